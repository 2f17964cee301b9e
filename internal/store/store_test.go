package store_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/kubev2v/migration-scenario-planner/internal/config"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	st "github.com/kubev2v/migration-scenario-planner/internal/store"
	"github.com/kubev2v/migration-scenario-planner/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func newTestStore() (st.Store, *gorm.DB) {
	cfg := config.NewDefault()
	db, err := st.InitDB(cfg)
	Expect(err).To(BeNil())

	s := st.NewStore(db)
	Expect(s.InitialMigration(context.TODO())).To(Succeed())
	return s, db
}

func testProfile(name string) estimation.TargetProfile {
	return estimation.NewTargetProfile(name, estimation.PlatformAWS, estimation.WithBandwidth(1000, 0.8))
}

func testScenario(name string) model.Scenario {
	return model.NewScenario(estimation.Scenario{
		ID:                 uuid.New(),
		Name:               name,
		Target:             testProfile("aws"),
		Strategy:           estimation.StrategyRehost,
		ParallelMigrations: 5,
		VMs: []estimation.VM{
			{ID: "vm-1", VCPUs: 2, MemoryMB: 4096, StorageMB: 10240},
			{ID: "vm-2", VCPUs: 4, MemoryMB: 8192, StorageMB: 20480},
		},
	})
}

var _ = Describe("Store", Ordered, func() {
	var (
		store  st.Store
		gormDB *gorm.DB
	)

	BeforeAll(func() {
		store, gormDB = newTestStore()
	})

	AfterAll(func() {
		store.Close()
	})

	Context("transaction", func() {
		It("inserts a target successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			target, err := store.Target().Create(ctx, model.NewTarget(testProfile("aws")))
			Expect(err).To(BeNil())
			Expect(target).ToNot(BeNil())

			_, cerr := st.Commit(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from targets;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rolls back a target successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			_, err = store.Target().Create(ctx, model.NewTarget(testProfile("aws")))
			Expect(err).To(BeNil())

			// visible inside the transaction
			targets, err := store.Target().List(ctx, st.NewTargetQueryFilter())
			Expect(err).To(BeNil())
			Expect(targets).To(HaveLen(1))

			_, cerr := st.Rollback(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from targets;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("joins the transaction already in the context", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())
			nested, err := store.NewTransactionContext(ctx)
			Expect(err).To(BeNil())
			Expect(st.FromContext(nested)).To(Equal(st.FromContext(ctx)))

			_, cerr := st.Rollback(ctx)
			Expect(cerr).To(BeNil())
		})

		AfterEach(func() {
			gormDB.Exec("DELETE from targets;")
		})
	})

	Context("targets", func() {
		It("rejects a duplicate name", func() {
			_, err := store.Target().Create(context.TODO(), model.NewTarget(testProfile("aws")))
			Expect(err).To(BeNil())

			_, err = store.Target().Create(context.TODO(), model.NewTarget(testProfile("aws")))
			Expect(err).To(MatchError(st.ErrDuplicateKey))
		})

		It("round trips the profile", func() {
			profile := testProfile("gdpr")
			profile.ComplianceFlags = []string{"GDPR"}
			profile.Region = "eu-west-1"
			_, err := store.Target().Create(context.TODO(), model.NewTarget(profile))
			Expect(err).To(BeNil())

			got, err := store.Target().Get(context.TODO(), "gdpr")
			Expect(err).To(BeNil())
			Expect(got.ToEstimation()).To(Equal(profile))
		})

		It("filters by platform", func() {
			onPrem := estimation.NewTargetProfile("dc", estimation.PlatformOnPrem, estimation.WithBandwidth(100, 1))
			for _, p := range []estimation.TargetProfile{testProfile("aws"), onPrem} {
				_, err := store.Target().Create(context.TODO(), model.NewTarget(p))
				Expect(err).To(BeNil())
			}

			targets, err := store.Target().List(context.TODO(), st.NewTargetQueryFilter().ByPlatform(string(estimation.PlatformOnPrem)))
			Expect(err).To(BeNil())
			Expect(targets).To(HaveLen(1))
			Expect(targets[0].Name).To(Equal("dc"))
		})

		It("updates the profile", func() {
			_, err := store.Target().Create(context.TODO(), model.NewTarget(testProfile("aws")))
			Expect(err).To(BeNil())

			profile := testProfile("aws")
			profile.BandwidthMbps = 10000
			updated, err := store.Target().Update(context.TODO(), model.NewTarget(profile))
			Expect(err).To(BeNil())
			Expect(updated.ToEstimation().BandwidthMbps).To(Equal(10000.0))
			Expect(updated.UpdatedAt).NotTo(BeNil())

			_, err = store.Target().Update(context.TODO(), model.NewTarget(testProfile("missing")))
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		It("returns not found", func() {
			_, err := store.Target().Get(context.TODO(), "missing")
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		It("deletes a target", func() {
			_, err := store.Target().Create(context.TODO(), model.NewTarget(testProfile("aws")))
			Expect(err).To(BeNil())
			Expect(store.Target().Delete(context.TODO(), "aws")).To(Succeed())

			_, err = store.Target().Get(context.TODO(), "aws")
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		AfterEach(func() {
			gormDB.Exec("DELETE from targets;")
		})
	})

	Context("scenarios", func() {
		It("creates a scenario without outputs", func() {
			created, err := store.Scenario().Create(context.TODO(), testScenario("baseline"))
			Expect(err).To(BeNil())

			got, err := store.Scenario().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			s := got.ToEstimation()
			Expect(s.Evaluated()).To(BeFalse())
			Expect(s.VMs).To(HaveLen(2))
			Expect(s.Target.Name).To(Equal("aws"))
			Expect(s.Strategy).To(Equal(estimation.StrategyRehost))
		})

		It("rejects a duplicate name", func() {
			_, err := store.Scenario().Create(context.TODO(), testScenario("baseline"))
			Expect(err).To(BeNil())
			_, err = store.Scenario().Create(context.TODO(), testScenario("baseline"))
			Expect(err).To(MatchError(st.ErrDuplicateKey))
		})

		It("replaces the outputs as a whole", func() {
			created, err := store.Scenario().Create(context.TODO(), testScenario("baseline"))
			Expect(err).To(BeNil())

			outputs := estimation.Outputs{
				VMCount:        2,
				Duration:       estimation.DurationBreakdown{TotalDays: 1.5, MigrationWaves: 1},
				Cost:           estimation.CostBreakdown{ProjectedTotal: 1234.5, ProjectionMonths: 12},
				Risk:           estimation.RiskAssessment{Level: estimation.RiskLevelLow, Factors: []string{}},
				Recommendation: estimation.Recommendation{Score: 91.2, Recommended: true, Reasons: []string{"a"}},
			}
			updated, err := store.Scenario().UpdateOutputs(context.TODO(), created.ID, outputs)
			Expect(err).To(BeNil())
			Expect(updated.EvaluatedAt).NotTo(BeNil())

			s := updated.ToEstimation()
			Expect(s.Evaluated()).To(BeTrue())
			Expect(*s.Outputs).To(Equal(outputs))

			_, err = store.Scenario().UpdateOutputs(context.TODO(), uuid.New(), outputs)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		It("filters and sorts", func() {
			for _, name := range []string{"charlie", "alpha", "bravo"} {
				_, err := store.Scenario().Create(context.TODO(), testScenario(name))
				Expect(err).To(BeNil())
			}
			retire := testScenario("retire")
			retire.Strategy = string(estimation.StrategyRetire)
			_, err := store.Scenario().Create(context.TODO(), retire)
			Expect(err).To(BeNil())

			scenarios, err := store.Scenario().List(context.TODO(),
				st.NewScenarioQueryFilter().ByStrategy(string(estimation.StrategyRehost)),
				st.NewScenarioQueryOptions().WithSortOrder(st.SortByName))
			Expect(err).To(BeNil())
			Expect(scenarios).To(HaveLen(3))
			Expect(scenarios[0].Name).To(Equal("alpha"))
			Expect(scenarios[2].Name).To(Equal("charlie"))

			unevaluated, err := store.Scenario().List(context.TODO(), st.NewScenarioQueryFilter().ByEvaluated(false), nil)
			Expect(err).To(BeNil())
			Expect(unevaluated).To(HaveLen(4))

			page, err := store.Scenario().List(context.TODO(), nil,
				st.NewScenarioQueryOptions().WithSortOrder(st.SortByName).WithLimit(2).WithOffset(1))
			Expect(err).To(BeNil())
			Expect(page).To(HaveLen(2))
			Expect(page[0].Name).To(Equal("bravo"))
		})

		It("deletes the scenario and its waves", func() {
			created, err := store.Scenario().Create(context.TODO(), testScenario("baseline"))
			Expect(err).To(BeNil())
			_, err = store.Wave().Replace(context.TODO(), created.ID, model.NewWaves(created.ID, []estimation.Wave{
				{Number: 1, VMIDs: []string{"vm-1"}, DependsOn: []int{}, Status: estimation.WaveStatusPlanned},
			}))
			Expect(err).To(BeNil())

			Expect(store.Scenario().Delete(context.TODO(), created.ID)).To(Succeed())

			count := 0
			Expect(gormDB.Raw("SELECT COUNT(*) from waves;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
			_, err = store.Scenario().Get(context.TODO(), created.ID)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		AfterEach(func() {
			gormDB.Exec("DELETE from waves;")
			gormDB.Exec("DELETE from scenarios;")
		})
	})

	Context("statistics", func() {
		It("counts targets and scenarios", func() {
			for _, p := range []estimation.TargetProfile{testProfile("aws"), testProfile("aws-2")} {
				_, err := store.Target().Create(context.TODO(), model.NewTarget(p))
				Expect(err).To(BeNil())
			}
			first, err := store.Scenario().Create(context.TODO(), testScenario("a"))
			Expect(err).To(BeNil())
			_, err = store.Scenario().Create(context.TODO(), testScenario("b"))
			Expect(err).To(BeNil())
			_, err = store.Scenario().UpdateOutputs(context.TODO(), first.ID, estimation.Outputs{})
			Expect(err).To(BeNil())

			stats, err := store.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.TargetsByPlatform).To(Equal(map[string]int{"AWS": 2}))
			Expect(stats.ScenariosByStrategy).To(Equal(map[string]int{"REHOST": 2}))
			Expect(stats.TotalScenarios).To(Equal(2))
			Expect(stats.EvaluatedScenarios).To(Equal(1))
			Expect(stats.TotalWaves).To(Equal(0))
		})

		AfterEach(func() {
			gormDB.Exec("DELETE from scenarios;")
			gormDB.Exec("DELETE from targets;")
		})
	})

	Context("waves", func() {
		var scenarioID uuid.UUID

		BeforeEach(func() {
			created, err := store.Scenario().Create(context.TODO(), testScenario("waves"))
			Expect(err).To(BeNil())
			scenarioID = created.ID
		})

		It("replaces every wave of a scenario", func() {
			first := []estimation.Wave{
				{Number: 1, VMIDs: []string{"vm-1"}, DependsOn: []int{}, Status: estimation.WaveStatusPlanned, StorageGB: 10},
				{Number: 2, VMIDs: []string{"vm-2"}, DependsOn: []int{1}, Status: estimation.WaveStatusPlanned, StorageGB: 20},
			}
			_, err := store.Wave().Replace(context.TODO(), scenarioID, model.NewWaves(scenarioID, first))
			Expect(err).To(BeNil())

			second := []estimation.Wave{
				{Number: 1, VMIDs: []string{"vm-1", "vm-2"}, DependsOn: []int{}, Status: estimation.WaveStatusPlanned, StorageGB: 30},
			}
			_, err = store.Wave().Replace(context.TODO(), scenarioID, model.NewWaves(scenarioID, second))
			Expect(err).To(BeNil())

			waves, err := store.Wave().List(context.TODO(), scenarioID)
			Expect(err).To(BeNil())
			Expect(waves.ToEstimation()).To(Equal(second))
		})

		It("keeps the old waves when the transaction is rolled back", func() {
			first := []estimation.Wave{
				{Number: 1, VMIDs: []string{"vm-1"}, DependsOn: []int{}, Status: estimation.WaveStatusPlanned},
			}
			_, err := store.Wave().Replace(context.TODO(), scenarioID, model.NewWaves(scenarioID, first))
			Expect(err).To(BeNil())

			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())
			_, err = store.Wave().Replace(ctx, scenarioID, model.WaveList{})
			Expect(err).To(BeNil())
			_, err = st.Rollback(ctx)
			Expect(err).To(BeNil())

			waves, err := store.Wave().List(context.TODO(), scenarioID)
			Expect(err).To(BeNil())
			Expect(waves.ToEstimation()).To(Equal(first))
		})

		AfterEach(func() {
			gormDB.Exec("DELETE from waves;")
			gormDB.Exec("DELETE from scenarios;")
		})
	})
})
