package v1alpha1

import (
	"net/http"

	api "github.com/kubev2v/migration-scenario-planner/api/v1alpha1"
	"github.com/kubev2v/migration-scenario-planner/pkg/version"
)

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	renderJSON(w, r, http.StatusOK, api.Info{
		GitCommit:   versionInfo.GitCommit,
		VersionName: versionInfo.GitVersion,
	})
}
