package migrations_test

import (
	"context"
	"os"
	"path"

	"github.com/kubev2v/migration-scenario-planner/internal/config"
	"github.com/kubev2v/migration-scenario-planner/internal/store"
	"github.com/kubev2v/migration-scenario-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("migrations", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
	})

	Context("store migrations", Ordered, func() {
		It("fails to migrate the db -- migration folder does not exist", func() {
			err := migrations.MigrateStore(gormdb, "some folder")
			Expect(err).NotTo(BeNil())
		})

		It("fails to migrate the db -- migration folder is a file", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())
			err = migrations.MigrateStore(gormdb, path.Join(currentFolder, "migrations.go"))
			Expect(err).NotTo(BeNil())
		})

		It("successfully migrates the db from a folder", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())

			err = migrations.MigrateStore(gormdb, path.Join(currentFolder, "sql"))
			Expect(err).To(BeNil())

			for _, table := range []string{"targets", "scenarios", "waves"} {
				Expect(gormdb.Migrator().HasTable(table)).To(BeTrue(), table)
			}

			version, err := migrations.Version(gormdb)
			Expect(err).To(BeNil())
			Expect(version).To(BeNumerically(">", 0))
		})

		It("successfully migrates the db with the embedded migrations", func() {
			Expect(migrations.MigrateStore(gormdb, "")).To(Succeed())
			// a second run is a no-op
			Expect(migrations.MigrateStore(gormdb, "")).To(Succeed())

			for _, table := range []string{"targets", "scenarios", "waves"} {
				Expect(gormdb.Migrator().HasTable(table)).To(BeTrue(), table)
			}
		})

		It("creates a schema the store can use", func() {
			Expect(migrations.MigrateStore(gormdb, "")).To(Succeed())
			targets, err := s.Target().List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(targets).To(BeEmpty())
		})

		AfterEach(func() {
			gormdb.Exec("DROP TABLE IF EXISTS waves;")
			gormdb.Exec("DROP TABLE IF EXISTS scenarios;")
			gormdb.Exec("DROP TABLE IF EXISTS targets;")
			gormdb.Exec("DROP TABLE IF EXISTS goose_db_version;")
		})
	})
})
