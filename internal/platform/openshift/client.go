package openshift

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

var (
	// ProjectsResource is the OpenShift project API.
	ProjectsResource = schema.GroupVersionResource{Group: "project.openshift.io", Version: "v1", Resource: "projects"}

	// BuildConfigsResource is the OpenShift build configuration API.
	BuildConfigsResource = schema.GroupVersionResource{Group: "build.openshift.io", Version: "v1", Resource: "buildconfigs"}
)

// WebHookSecretKey is the Secret data key holding a build webhook secret.
const WebHookSecretKey = "WebHookSecretKey"

// Project is an OpenShift project (namespace).
type Project struct {
	Name        string
	DisplayName string
}

// Service reads the projects and build webhooks of one cluster.
type Service interface {
	FindProject(ctx context.Context, name string) (*Project, bool, error)
	// WebhookURLs returns the GitHub webhook URLs of every BuildConfig in
	// project, sorted.
	WebhookURLs(ctx context.Context, project *Project) ([]*url.URL, error)
}

// Identity authenticates against a cluster.
type Identity struct {
	Token string
}

// Factory creates a Service for a cluster and identity.
type Factory func(cluster Cluster, identity Identity) (Service, error)

// Client implements Service with client-go.
type Client struct {
	cluster       Cluster
	clientset     kubernetes.Interface
	dynamicClient dynamic.Interface
}

// NewService creates a client for cluster authenticated as identity.
func NewService(cluster Cluster, identity Identity) (*Client, error) {
	if cluster.APIURL == "" {
		return nil, fmt.Errorf("cluster %s has no API URL", cluster.ID)
	}

	restConfig := &rest.Config{
		Host:        cluster.APIURL,
		BearerToken: identity.Token,
		TLSClientConfig: rest.TLSClientConfig{
			Insecure: cluster.InsecureSkipTLSVerify,
		},
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	return NewFromClients(cluster, clientset, dynamicClient), nil
}

// NewFromClients creates a client from pre-configured clients.
// This is useful for testing with fake clients.
func NewFromClients(cluster Cluster, clientset kubernetes.Interface, dynamicClient dynamic.Interface) *Client {
	return &Client{
		cluster:       cluster,
		clientset:     clientset,
		dynamicClient: dynamicClient,
	}
}

// FindProject looks up a project by name. Projects the identity may not see
// are reported as missing.
func (c *Client) FindProject(ctx context.Context, name string) (*Project, bool, error) {
	obj, err := c.dynamicClient.Resource(ProjectsResource).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) || apierrors.IsForbidden(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get project %s: %w", name, err)
	}

	displayName := obj.GetAnnotations()["openshift.io/display-name"]
	return &Project{Name: obj.GetName(), DisplayName: displayName}, true, nil
}

// WebhookURLs implements Service.
func (c *Client) WebhookURLs(ctx context.Context, project *Project) ([]*url.URL, error) {
	list, err := c.dynamicClient.Resource(BuildConfigsResource).Namespace(project.Name).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list build configs in %s: %w", project.Name, err)
	}

	var urls []*url.URL
	for i := range list.Items {
		bc := &list.Items[i]
		secrets, err := c.githubSecrets(ctx, bc)
		if err != nil {
			return nil, err
		}
		for _, secret := range secrets {
			u, err := c.webhookURL(project.Name, bc.GetName(), secret)
			if err != nil {
				return nil, err
			}
			urls = append(urls, u)
		}
	}

	sort.Slice(urls, func(i, j int) bool { return urls[i].String() < urls[j].String() })
	return urls, nil
}

// githubSecrets returns the secrets of the GitHub triggers of bc.
func (c *Client) githubSecrets(ctx context.Context, bc *unstructured.Unstructured) ([]string, error) {
	triggers, _, err := unstructured.NestedSlice(bc.Object, "spec", "triggers")
	if err != nil {
		return nil, fmt.Errorf("build config %s has malformed triggers: %w", bc.GetName(), err)
	}

	var secrets []string
	for _, raw := range triggers {
		trigger, ok := raw.(map[string]any)
		if !ok || !strings.EqualFold(fmt.Sprint(trigger["type"]), "GitHub") {
			continue
		}

		if secret, _, _ := unstructured.NestedString(trigger, "github", "secret"); secret != "" {
			secrets = append(secrets, secret)
			continue
		}

		ref, _, _ := unstructured.NestedString(trigger, "github", "secretReference", "name")
		if ref == "" {
			continue
		}
		secret, err := c.secretValue(ctx, bc.GetNamespace(), ref)
		if err != nil {
			return nil, err
		}
		secrets = append(secrets, secret)
	}
	return secrets, nil
}

func (c *Client) secretValue(ctx context.Context, namespace, name string) (string, error) {
	s, err := c.clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get webhook secret %s/%s: %w", namespace, name, err)
	}
	value := s.Data[WebHookSecretKey]
	if len(value) == 0 {
		return "", fmt.Errorf("webhook secret %s/%s has no %s", namespace, name, WebHookSecretKey)
	}
	return string(value), nil
}

func (c *Client) webhookURL(namespace, buildConfig, secret string) (*url.URL, error) {
	raw := fmt.Sprintf("%s/apis/build.openshift.io/v1/namespaces/%s/buildconfigs/%s/webhooks/%s/github",
		strings.TrimSuffix(c.cluster.APIURL, "/"),
		url.PathEscape(namespace), url.PathEscape(buildConfig), url.PathEscape(secret))
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL for cluster %s: %w", c.cluster.ID, err)
	}
	return u, nil
}

// NewFactory returns a Factory backed by NewService.
func NewFactory() Factory {
	return func(cluster Cluster, identity Identity) (Service, error) {
		return NewService(cluster, identity)
	}
}
