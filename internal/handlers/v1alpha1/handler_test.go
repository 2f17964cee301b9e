package v1alpha1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	api "github.com/kubev2v/migration-scenario-planner/api/v1alpha1"
	"github.com/kubev2v/migration-scenario-planner/internal/config"
	handlers "github.com/kubev2v/migration-scenario-planner/internal/handlers/v1alpha1"
	"github.com/kubev2v/migration-scenario-planner/internal/service"
	"github.com/kubev2v/migration-scenario-planner/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("service handler", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		router chi.Router
	)

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	decode := func(rec *httptest.ResponseRecorder, v any) {
		Expect(json.Unmarshal(rec.Body.Bytes(), v)).To(Succeed())
	}

	createTarget := func() {
		rec := do(http.MethodPost, "/api/v1/targets", api.TargetCreate{
			Name:          "aws-east",
			Platform:      api.PlatformAWS,
			BandwidthMbps: 1000,
		})
		Expect(rec.Code).To(Equal(http.StatusCreated))
	}

	createScenario := func(name string) api.Scenario {
		dc := "dc1"
		rec := do(http.MethodPost, "/api/v1/scenarios", api.ScenarioCreate{
			Name:     name,
			Target:   "aws-east",
			Strategy: api.StrategyRehost,
			Vms: []api.VM{
				{Id: "vm-1", Vcpus: 2, MemoryMb: 4096, StorageMb: 51200, Datacenter: &dc},
				{Id: "vm-2", Vcpus: 4, MemoryMb: 8192, StorageMb: 204800},
			},
		})
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var scenario api.Scenario
		decode(rec, &scenario)
		return scenario
	}

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())
		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration(context.TODO())).To(Succeed())

		h := handlers.NewServiceHandler(
			service.NewTargetService(s),
			service.NewScenarioService(s, service.NewEstimationEngine(nil), nil),
		)
		router = chi.NewRouter()
		h.Routes(router)
	})

	AfterEach(func() {
		for _, table := range []string{"waves", "scenarios", "targets"} {
			gormdb.Exec("DELETE FROM " + table)
		}
	})

	Context("targets", func() {
		It("creates and lists targets", func() {
			createTarget()

			rec := do(http.MethodGet, "/api/v1/targets", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var targets api.TargetList
			decode(rec, &targets)
			Expect(targets).To(HaveLen(1))
			Expect(targets[0].NetworkEfficiency).To(Equal(0.8))
			Expect(targets[0].ComplianceFlags).NotTo(BeNil())
		})

		It("returns 409 on a duplicate target", func() {
			createTarget()
			rec := do(http.MethodPost, "/api/v1/targets", api.TargetCreate{Name: "aws-east", Platform: api.PlatformAWS, BandwidthMbps: 10})
			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("returns 400 on an invalid body", func() {
			rec := do(http.MethodPost, "/api/v1/targets", api.TargetCreate{Name: "aws$", Platform: api.PlatformAWS, BandwidthMbps: 10})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var apiErr api.Error
			decode(rec, &apiErr)
			Expect(apiErr.Message).To(ContainSubstring("target_name"))
		})

		It("returns 404 for a missing target", func() {
			Expect(do(http.MethodGet, "/api/v1/targets/missing", nil).Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodDelete, "/api/v1/targets/missing", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("updates a target", func() {
			createTarget()
			rec := do(http.MethodPut, "/api/v1/targets/aws-east", api.TargetCreate{Name: "aws-east", Platform: api.PlatformAWS, BandwidthMbps: 5000})
			Expect(rec.Code).To(Equal(http.StatusOK))

			var target api.Target
			decode(rec, &target)
			Expect(target.BandwidthMbps).To(Equal(5000.0))
		})

		It("rejects an update whose name differs from the path", func() {
			createTarget()
			rec := do(http.MethodPut, "/api/v1/targets/aws-east", api.TargetCreate{Name: "other", Platform: api.PlatformAWS, BandwidthMbps: 5000})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("scenarios", func() {
		BeforeEach(createTarget)

		It("creates a scenario from a selector", func() {
			dc := "dc1"
			rec := do(http.MethodPost, "/api/v1/scenarios", api.ScenarioCreate{
				Name:     "dc1-only",
				Target:   "aws-east",
				Strategy: api.StrategyRehost,
				Vms: []api.VM{
					{Id: "vm-1", Vcpus: 2, MemoryMb: 4096, StorageMb: 51200, Datacenter: &dc},
					{Id: "vm-2", Vcpus: 4, MemoryMb: 8192, StorageMb: 204800},
				},
				Selector: &api.VMSelector{Datacenters: []string{"dc1"}},
			})
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var scenario api.Scenario
			decode(rec, &scenario)
			Expect(scenario.Vms).To(HaveLen(1))
			Expect(scenario.Criteria).To(Equal("datacenter in (dc1)"))
			Expect(scenario.ParallelMigrations).To(Equal(10))
			Expect(scenario.Outputs).To(BeNil())
		})

		It("returns 404 when the target is unknown", func() {
			rec := do(http.MethodPost, "/api/v1/scenarios", api.ScenarioCreate{
				Name: "lift", Target: "missing", Strategy: api.StrategyRehost, Vms: []api.VM{},
			})
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for a malformed id", func() {
			Expect(do(http.MethodGet, "/api/v1/scenarios/not-a-uuid", nil).Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an unknown id", func() {
			Expect(do(http.MethodGet, "/api/v1/scenarios/"+uuid.NewString(), nil).Code).To(Equal(http.StatusNotFound))
		})

		It("evaluates, generates waves and compares", func() {
			first := createScenario("alpha")
			second := createScenario("bravo")

			rec := do(http.MethodPost, "/api/v1/scenarios/"+first.Id.String()+"/waves", api.WavesRequest{})
			Expect(rec.Code).To(Equal(http.StatusConflict))

			rec = do(http.MethodPost, "/api/v1/scenarios/"+first.Id.String()+"/evaluate", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var evaluated api.Scenario
			decode(rec, &evaluated)
			Expect(evaluated.Outputs).NotTo(BeNil())
			Expect(evaluated.Outputs.VmCount).To(Equal(2))

			rec = do(http.MethodPost, "/api/v1/scenarios/evaluate", api.ScenarioIds{Ids: []uuid.UUID{first.Id, second.Id}})
			Expect(rec.Code).To(Equal(http.StatusOK))

			size := 1
			rec = do(http.MethodPost, "/api/v1/scenarios/"+first.Id.String()+"/waves", api.WavesRequest{WaveSize: &size})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			var waves api.WaveList
			decode(rec, &waves)
			Expect(waves).To(HaveLen(2))
			Expect(waves[1].DependsOn).To(Equal([]int{1}))

			rec = do(http.MethodGet, "/api/v1/scenarios/"+first.Id.String()+"/waves", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			rec = do(http.MethodPost, "/api/v1/scenarios/compare", api.ScenarioIds{Ids: []uuid.UUID{first.Id, second.Id}})
			Expect(rec.Code).To(Equal(http.StatusOK))
			var rows api.Comparison
			decode(rec, &rows)
			Expect(rows).To(HaveLen(2))
		})

		It("returns 400 for a dependency cycle", func() {
			scenario := createScenario("alpha")
			Expect(do(http.MethodPost, "/api/v1/scenarios/"+scenario.Id.String()+"/evaluate", nil).Code).To(Equal(http.StatusOK))

			size := 1
			rec := do(http.MethodPost, "/api/v1/scenarios/"+scenario.Id.String()+"/waves", api.WavesRequest{
				WaveSize: &size,
				Dependencies: []api.WaveDependency{
					{Wave: 1, DependsOn: []int{2}},
					{Wave: 2, DependsOn: []int{1}},
				},
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("filters the listing", func() {
			first := createScenario("alpha")
			createScenario("bravo")
			Expect(do(http.MethodPost, "/api/v1/scenarios/"+first.Id.String()+"/evaluate", nil).Code).To(Equal(http.StatusOK))

			rec := do(http.MethodGet, "/api/v1/scenarios?evaluated=true", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var scenarios api.ScenarioList
			decode(rec, &scenarios)
			Expect(scenarios).To(HaveLen(1))
			Expect(scenarios[0].Name).To(Equal("alpha"))

			Expect(do(http.MethodGet, "/api/v1/scenarios?limit=abc", nil).Code).To(Equal(http.StatusBadRequest))
		})

		It("deletes a scenario", func() {
			scenario := createScenario("alpha")
			Expect(do(http.MethodDelete, "/api/v1/scenarios/"+scenario.Id.String(), nil).Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, "/api/v1/scenarios/"+scenario.Id.String(), nil).Code).To(Equal(http.StatusNotFound))
		})
	})
})
