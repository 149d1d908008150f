// Package openshift resolves OpenShift clusters and the build webhooks of a
// project.
//
// Clusters come from a YAML registry file. Projects and BuildConfigs are read
// through the client-go dynamic client, so no OpenShift API types are
// compiled in; webhook secrets stored in Secrets are read with the typed
// clientset.
package openshift
