package service_test

import (
	"context"
	"sync"

	"github.com/kubev2v/migration-scenario-planner/internal/config"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/store"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func newTestStore() (store.Store, *gorm.DB) {
	cfg := config.NewDefault()
	db, err := store.InitDB(cfg)
	Expect(err).To(BeNil())

	s := store.NewStore(db)
	Expect(s.InitialMigration(context.TODO())).To(Succeed())
	return s, db
}

func cleanTables(db *gorm.DB) {
	for _, table := range []string{"waves", "scenarios", "targets"} {
		Expect(db.Exec("DELETE FROM " + table).Error).To(BeNil())
	}
}

func awsTarget(name string) estimation.TargetProfile {
	return estimation.NewTargetProfile(name, estimation.PlatformAWS,
		estimation.WithBandwidth(1000, 0.8),
		estimation.WithComputeRates(0.05, 0.01, 0.1),
		estimation.WithNetworkRates(0, 0.09),
	)
}

func testVMs() []estimation.VM {
	return []estimation.VM{
		{ID: "vm-1", VCPUs: 2, MemoryMB: 4096, StorageMB: 50 * 1024, Criticality: 1},
		{ID: "vm-2", VCPUs: 4, MemoryMB: 8192, StorageMB: 200 * 1024, Criticality: 3},
		{ID: "vm-3", VCPUs: 2, MemoryMB: 2048, StorageMB: 20 * 1024, Criticality: 2},
	}
}

type publishedEvent struct {
	Kind    string
	Payload any
}

type testPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *testPublisher) Publish(_ context.Context, kind string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Kind: kind, Payload: payload})
	return nil
}

func (p *testPublisher) Kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]string, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func (p *testPublisher) Last() publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}
