// Package amplify contains the PCR growth core. It never imports sweep,
// writers, or cmd; keep it domain-only.
//
// Both engines return fresh pools and leave their input untouched, so the
// same prior-stage pool can feed independent branches of a nested run.
package amplify
