// Package writers renders sweep and access results in the supported output
// formats. Formats register themselves in init(); dispatch goes through the
// registry so drivers never switch on format names.
package writers
