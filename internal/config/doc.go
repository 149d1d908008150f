// Package config loads the launcher configuration.
//
// Settings come from a launcher.yaml file found in the working directory or
// one of its parents, overridden by environment variables. Credentials are
// normally supplied through the environment (GITHUB_TOKEN, OPENSHIFT_TOKEN)
// rather than the file. Operation timeouts are read separately by
// [LoadTimeouts].
package config
