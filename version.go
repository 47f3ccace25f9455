package clouddiagram

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/BenKalegin/clouddiagram-sub004.Version=...".
var Version = "0.1.0-dev"
