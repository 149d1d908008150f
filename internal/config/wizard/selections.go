package wizard

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/imamik/launcher/internal/catalog"
	"github.com/imamik/launcher/internal/platform/github"
	"github.com/imamik/launcher/internal/platform/openshift"
	"github.com/imamik/launcher/internal/provisioning"
)

// DeploymentType selects what happens with the generated project.
type DeploymentType string

const (
	// DeploymentCD pushes the project to GitHub and wires OpenShift builds.
	DeploymentCD DeploymentType = "cd"
	// DeploymentZIP writes the project as a ZIP archive.
	DeploymentZIP DeploymentType = "zip"
)

// ValidDeploymentTypes lists the supported deployment types.
var ValidDeploymentTypes = []DeploymentType{DeploymentCD, DeploymentZIP}

// IsValid reports whether t is a supported deployment type.
func (t DeploymentType) IsValid() bool {
	for _, v := range ValidDeploymentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// projectNameRegex validates a DNS-1123 label starting with a letter.
var projectNameRegex = regexp.MustCompile(`^[a-z]([a-z0-9-]{0,61}[a-z0-9])?$`)

// Selections holds the answers shared by the wizard steps.
type Selections struct {
	Mission        *catalog.Mission
	Runtime        *catalog.Runtime
	DeploymentType DeploymentType
	// ClusterID is the OpenShift cluster for DeploymentCD.
	ClusterID string
	// ProjectName names the OpenShift project and, by default, the
	// GitHub repository.
	ProjectName           string
	RepositoryName        string
	RepositoryDescription string
}

// Validate checks the answers that do not depend on the catalog.
func (s *Selections) Validate() error {
	var errs []error
	if s.Mission == nil {
		errs = append(errs, errMissionRequired)
	}
	if s.Runtime == nil {
		errs = append(errs, errRuntimeRequired)
	}
	if !s.DeploymentType.IsValid() {
		errs = append(errs, fmt.Errorf("invalid deployment type %q (valid: %v)", s.DeploymentType, ValidDeploymentTypes))
	}
	if s.DeploymentType == DeploymentCD && s.ClusterID == "" {
		errs = append(errs, errClusterRequired)
	}
	if err := validateProjectName(s.ProjectName); err != nil {
		errs = append(errs, err)
	}
	if s.RepositoryName != "" {
		if err := validateProjectName(s.RepositoryName); err != nil {
			errs = append(errs, fmt.Errorf("repository name: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Projectile builds the provisioning request for the selections.
func (s *Selections) Projectile(gh github.Identity, oc openshift.Identity, location string) *provisioning.Projectile {
	p := provisioning.NewProjectile()
	if s.Mission != nil {
		p.Mission = *s.Mission
	}
	if s.Runtime != nil {
		p.Runtime = *s.Runtime
	}
	p.GitHubIdentity = gh
	p.OpenShiftIdentity = oc
	p.GitHubRepositoryName = s.RepositoryName
	p.GitHubRepositoryDescription = s.RepositoryDescription
	p.OpenShiftProjectName = s.ProjectName
	p.OpenShiftClusterName = s.ClusterID
	p.ProjectLocation = location
	return p
}

func validateProjectName(name string) error {
	if name == "" {
		return errProjectNameRequired
	}
	if !projectNameRegex.MatchString(name) {
		return errProjectNameInvalid
	}
	return nil
}
