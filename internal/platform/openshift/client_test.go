package openshift

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func project(name, displayName string) *unstructured.Unstructured {
	p := &unstructured.Unstructured{}
	p.SetAPIVersion("project.openshift.io/v1")
	p.SetKind("Project")
	p.SetName(name)
	if displayName != "" {
		p.SetAnnotations(map[string]string{"openshift.io/display-name": displayName})
	}
	return p
}

func buildConfig(namespace, name string, triggers ...any) *unstructured.Unstructured {
	bc := &unstructured.Unstructured{Object: map[string]any{
		"spec": map[string]any{"triggers": triggers},
	}}
	bc.SetAPIVersion("build.openshift.io/v1")
	bc.SetKind("BuildConfig")
	bc.SetNamespace(namespace)
	bc.SetName(name)
	return bc
}

func githubTrigger(github map[string]any) map[string]any {
	return map[string]any{"type": "GitHub", "github": github}
}

var _ = Describe("Client", func() {
	var (
		ctx       context.Context
		cluster   Cluster
		dyn       *dynamicfake.FakeDynamicClient
		clientset *fake.Clientset
		c         *Client
	)

	newClient := func(objects ...runtime.Object) {
		dyn = dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(),
			map[schema.GroupVersionResource]string{
				ProjectsResource:     "ProjectList",
				BuildConfigsResource: "BuildConfigList",
			}, objects...)
		c = NewFromClients(cluster, clientset, dyn)
	}

	BeforeEach(func() {
		ctx = context.Background()
		cluster = Cluster{ID: "starter", APIURL: "https://api.starter.example.com:6443/"}
		//nolint:staticcheck // SA1019: NewSimpleClientset is sufficient here
		clientset = fake.NewSimpleClientset(&corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "hook-secret", Namespace: "demo"},
			Data:       map[string][]byte{WebHookSecretKey: []byte("from-secret")},
		}, &corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "empty", Namespace: "demo"},
		})
	})

	Describe("FindProject", func() {
		It("returns an existing project", func() {
			newClient(project("demo", "Demo App"))

			p, found, err := c.FindProject(ctx, "demo")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(p).To(Equal(&Project{Name: "demo", DisplayName: "Demo App"}))
		})

		It("reports a missing project", func() {
			newClient()

			p, found, err := c.FindProject(ctx, "demo")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
			Expect(p).To(BeNil())
		})

		It("treats a forbidden project as missing", func() {
			newClient()
			dyn.PrependReactor("get", "projects", func(k8stesting.Action) (bool, runtime.Object, error) {
				return true, nil, apierrors.NewForbidden(schema.GroupResource{Group: "project.openshift.io", Resource: "projects"}, "demo", errors.New("denied"))
			})

			_, found, err := c.FindProject(ctx, "demo")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
		})

		It("returns other API errors", func() {
			newClient()
			dyn.PrependReactor("get", "projects", func(k8stesting.Action) (bool, runtime.Object, error) {
				return true, nil, apierrors.NewServiceUnavailable("down")
			})

			_, _, err := c.FindProject(ctx, "demo")
			Expect(err).To(MatchError(ContainSubstring("failed to get project demo")))
		})
	})

	Describe("WebhookURLs", func() {
		It("builds a URL for every GitHub trigger", func() {
			newClient(
				project("demo", ""),
				buildConfig("demo", "web",
					map[string]any{"type": "ConfigChange"},
					githubTrigger(map[string]any{"secret": "inline"}),
				),
				buildConfig("demo", "api",
					githubTrigger(map[string]any{"secretReference": map[string]any{"name": "hook-secret"}}),
					map[string]any{"type": "Generic", "generic": map[string]any{"secret": "ignored"}},
				),
				buildConfig("other", "elsewhere", githubTrigger(map[string]any{"secret": "x"})),
			)

			urls, err := c.WebhookURLs(ctx, &Project{Name: "demo"})
			Expect(err).NotTo(HaveOccurred())

			var got []string
			for _, u := range urls {
				got = append(got, u.String())
			}
			Expect(got).To(Equal([]string{
				"https://api.starter.example.com:6443/apis/build.openshift.io/v1/namespaces/demo/buildconfigs/api/webhooks/from-secret/github",
				"https://api.starter.example.com:6443/apis/build.openshift.io/v1/namespaces/demo/buildconfigs/web/webhooks/inline/github",
			}))
		})

		It("returns nothing for a project without build configs", func() {
			newClient(project("demo", ""))

			urls, err := c.WebhookURLs(ctx, &Project{Name: "demo"})
			Expect(err).NotTo(HaveOccurred())
			Expect(urls).To(BeEmpty())
		})

		It("fails when a referenced secret has no webhook key", func() {
			newClient(buildConfig("demo", "web",
				githubTrigger(map[string]any{"secretReference": map[string]any{"name": "empty"}})))

			_, err := c.WebhookURLs(ctx, &Project{Name: "demo"})
			Expect(err).To(MatchError(ContainSubstring("webhook secret demo/empty has no WebHookSecretKey")))
		})

		It("fails when a referenced secret is missing", func() {
			newClient(buildConfig("demo", "web",
				githubTrigger(map[string]any{"secretReference": map[string]any{"name": "missing"}})))

			_, err := c.WebhookURLs(ctx, &Project{Name: "demo"})
			Expect(err).To(MatchError(ContainSubstring("failed to get webhook secret demo/missing")))
		})
	})

	Describe("NewService", func() {
		It("requires an API URL", func() {
			_, err := NewService(Cluster{ID: "broken"}, Identity{Token: "t"})
			Expect(err).To(MatchError("cluster broken has no API URL"))
		})

		It("creates clients for a cluster", func() {
			svc, err := NewFactory()(cluster, Identity{Token: "t"})
			Expect(err).NotTo(HaveOccurred())
			Expect(svc).NotTo(BeNil())
		})
	})
})
