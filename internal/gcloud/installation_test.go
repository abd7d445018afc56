package gcloud

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/iapssh/internal/config"
)

func TestInstallation_Args(t *testing.T) {
	t.Parallel()

	ga := &Installation{}
	assert.Equal(t, []string{"compute", "ssh"}, ga.Args("compute", "ssh"))

	beta := &Installation{Component: config.ComponentBeta}
	assert.Equal(t, []string{"beta", "compute", "ssh"}, beta.Args("compute", "ssh"))

	alpha := &Installation{Component: config.ComponentAlpha}
	assert.Equal(t, []string{"alpha", "components", "list"}, alpha.Args("components", "list"))
}

func TestInstallation_Env(t *testing.T) {
	t.Parallel()
	sep := string(os.PathListSeparator)
	inst := &Installation{BinDir: "/cache/gcloud/470.0.0/x64/bin"}

	tests := []struct {
		name string
		base []string
		want []string
	}{
		{
			name: "prepends to existing PATH",
			base: []string{"HOME=/home/runner", "PATH=/usr/bin" + sep + "/bin"},
			want: []string{"HOME=/home/runner", "PATH=/cache/gcloud/470.0.0/x64/bin" + sep + "/usr/bin" + sep + "/bin"},
		},
		{
			name: "adds missing PATH",
			base: []string{"HOME=/home/runner"},
			want: []string{"HOME=/home/runner", "PATH=/cache/gcloud/470.0.0/x64/bin"},
		},
		{
			name: "empty PATH",
			base: []string{"PATH="},
			want: []string{"PATH=/cache/gcloud/470.0.0/x64/bin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inst.Env(tt.base))
		})
	}
}
