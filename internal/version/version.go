package version

// Version is stamped at release; keep in sync with the changelog.
const Version = "0.1.0"
