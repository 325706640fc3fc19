package di_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-user-records/cache"
	"github.com/goliatone/go-user-records/internal/config"
	"github.com/goliatone/go-user-records/pkg/di"
	"github.com/goliatone/go-user-records/pkg/testsupport"
	"github.com/goliatone/go-user-records/users"
)

var _ = Describe("Cache-aside user records", func() {
	var (
		ctx       context.Context
		mr        *miniredis.Miniredis
		container *di.Container
		hook      *logtest.Hook
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		mr, err = miniredis.Run()
		Expect(err).NotTo(HaveOccurred())

		cfg := config.Default()
		cfg.Database.Driver = "sqlite3"
		cfg.Database.URL = testsupport.SQLiteDSN()
		cfg.Cache.RedisURL = "redis://" + mr.Addr()
		cfg.Cache.MaxRetries = -1

		logger, h := logtest.NewNullLogger()
		hook = h
		container, err = di.NewContainer(cfg, di.WithLogger(logger))
		Expect(err).NotTo(HaveOccurred())
		Expect(container.EnsureSchema(ctx)).To(Succeed())
	})

	AfterEach(func() {
		Expect(container.Close()).To(Succeed())
		mr.Close()
	})

	Describe("the Ann scenario", func() {
		It("creates, moves Ann to Berlin and serves the cached record", func() {
			coord := container.Coordinator()

			created, err := coord.SetUser(ctx, users.User{Name: "Ann", Email: "ann@x.com", Mobile: "555"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.City).To(BeEmpty())
			Expect(created.Country).To(BeEmpty())

			updated, err := coord.UpdateUser(ctx, created.ID, users.PartialUser{City: users.String("Berlin")})
			Expect(err).NotTo(HaveOccurred())
			Expect(*updated).To(Equal(users.User{
				ID:     created.ID,
				Name:   "Ann",
				Email:  "ann@x.com",
				Mobile: "555",
				City:   "Berlin",
			}))

			got, err := coord.GetUser(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(updated))

			raw, err := mr.Get(cache.UserKey(created.ID))
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).To(MatchJSON(`{"id":` + created.Key() + `,"name":"Ann","email":"ann@x.com","mobile":"555","city":"Berlin"}`))
			Expect(mr.TTL(cache.UserKey(created.ID))).To(Equal(36000 * time.Second))
		})
	})

	Describe("reads", func() {
		It("repopulates the cache after the entry expires", func() {
			coord := container.Coordinator()
			created, err := coord.SetUser(ctx, users.User{Name: "Bob", Email: "bob@x.com", City: "Lagos"})
			Expect(err).NotTo(HaveOccurred())

			mr.FastForward(36001 * time.Second)
			Expect(mr.Exists(cache.UserKey(created.ID))).To(BeFalse())

			got, err := coord.GetUser(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(created))
			Expect(mr.Exists(cache.UserKey(created.ID))).To(BeTrue())
		})

		It("fails fast when the cache is unavailable", func() {
			coord := container.Coordinator()
			created, err := coord.SetUser(ctx, users.User{Name: "Cy", Email: "cy@x.com"})
			Expect(err).NotTo(HaveOccurred())

			mr.SetError("LOADING Redis is loading the dataset in memory")

			_, err = coord.GetUser(ctx, created.ID)
			Expect(err).To(HaveOccurred())
			Expect(hook.LastEntry()).NotTo(BeNil())
			Expect(hook.LastEntry().Data).To(HaveKeyWithValue("operation", "getUser"))

			cacheUp, storeUp := coord.Check(ctx)
			Expect(cacheUp).To(BeFalse())
			Expect(storeUp).To(BeTrue())
		})
	})

	Describe("deletes", func() {
		It("drops the cache entry even when no row exists", func() {
			Expect(mr.Set(cache.UserKey(42), `{"id":42,"name":"Ghost","email":"g@x.com"}`)).To(Succeed())

			deleted, err := container.Coordinator().DelUser(ctx, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeNil())
			Expect(mr.Exists(cache.UserKey(42))).To(BeFalse())
		})
	})

	Describe("uniqueness", func() {
		It("rejects duplicates before writing", func() {
			coord := container.Coordinator()
			fixtures := testsupport.Users(GinkgoTB())
			for _, u := range fixtures {
				_, err := coord.SetUser(ctx, u)
				Expect(err).NotTo(HaveOccurred())
			}

			_, err := coord.SetUser(ctx, users.User{Name: "Again", Email: "ann@example.com"})
			Expect(err).To(MatchError(users.ErrDuplicateEmail))

			_, err = coord.SetUser(ctx, users.User{Name: "Again", Email: "new@example.com", Mobile: "555-0100"})
			Expect(err).To(MatchError(users.ErrDuplicateMobile))

			Expect(mr.Keys()).To(HaveLen(len(fixtures)))
		})
	})
})
