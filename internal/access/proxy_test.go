package access_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/resort-catalog/internal/access"
	"github.com/kubev2v/resort-catalog/internal/models"
	"github.com/kubev2v/resort-catalog/internal/store"
	"github.com/kubev2v/resort-catalog/internal/store/migrations"
	srvErrors "github.com/kubev2v/resort-catalog/pkg/errors"
)

var _ = Describe("Proxy", func() {
	var (
		ctx   context.Context
		s     *store.Store
		proxy *access.Proxy[models.Resort]
		rixos models.Resort
	)

	BeforeEach(func() {
		ctx = context.Background()

		conn := store.NewConnection()
		db, err := conn.Open(ctx, ":memory:", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())
		s = store.NewStore(conn)

		Expect(s.Users().Add(ctx, models.NewUser("root", "secret", models.RoleAdmin))).To(Succeed())
		Expect(s.Users().Add(ctx, models.NewUser("guest", "guest", models.RoleUser))).To(Succeed())

		rixos = models.Resort{Name: "rixos", Price: 12999}
		proxy = access.NewProxy[models.Resort](s.Resorts(), s.Users(), nil)
	})

	AfterEach(func() {
		Expect(s.Close()).To(Succeed())
	})

	Context("Login", func() {
		// Given a stored admin
		// When we log in with the right password
		// Then the session should be active
		It("should accept valid credentials", func() {
			// Act
			ok, err := proxy.Login(ctx, "root", "secret")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(proxy.CheckAccess()).To(BeTrue())
		})

		// Given a stored admin
		// When we log in with a wrong password
		// Then no session should be active
		It("should reject a wrong password", func() {
			// Act
			ok, err := proxy.Login(ctx, "root", "wrong")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(proxy.CheckAccess()).To(BeFalse())
		})

		// Given no such user
		// When we log in
		// Then it should fail without error
		It("should reject an unknown login", func() {
			ok, err := proxy.Login(ctx, "nobody", "secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		// Given an active admin session
		// When a later login fails
		// Then the previous session should be dropped
		It("should drop the session on a failed login", func() {
			// Arrange
			ok, err := proxy.Login(ctx, "root", "secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			// Act
			ok, err = proxy.Login(ctx, "root", "wrong")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(proxy.CheckAccess()).To(BeFalse())
			_, err = proxy.GetAll(ctx)
			Expect(srvErrors.IsNoUserError(err)).To(BeTrue())
		})

		// Given privileges without the user role
		// When a user logs in
		// Then the login should be refused
		It("should refuse a role without privilege level", func() {
			// Arrange
			proxy = access.NewProxy[models.Resort](s.Resorts(), s.Users(), access.Privileges{models.RoleAdmin: access.LevelAdmin})

			// Act
			ok, err := proxy.Login(ctx, "guest", "guest")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Context("without a session", func() {
		// Given no login
		// When any operation is attempted
		// Then it should fail with NoUserError
		It("should fail every operation with NoUserError", func() {
			_, err := proxy.GetAll(ctx)
			Expect(srvErrors.IsNoUserError(err)).To(BeTrue())

			_, err = proxy.Filter(ctx, store.Eq("name", "rixos"))
			Expect(srvErrors.IsNoUserError(err)).To(BeTrue())

			Expect(srvErrors.IsNoUserError(proxy.Add(ctx, rixos))).To(BeTrue())
			Expect(srvErrors.IsNoUserError(proxy.Remove(ctx, rixos))).To(BeTrue())
			Expect(srvErrors.IsNoUserError(proxy.Update(ctx, rixos, rixos))).To(BeTrue())
		})
	})

	Context("as admin", func() {
		BeforeEach(func() {
			ok, err := proxy.Login(ctx, "root", "secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		// Given an admin session
		// When we add, update, read and remove a resort
		// Then every operation should reach the store
		It("should allow reads and writes", func() {
			// Act & Assert
			Expect(proxy.Add(ctx, rixos)).To(Succeed())

			cheaper := rixos
			cheaper.Price = 9999
			Expect(proxy.Update(ctx, rixos, cheaper)).To(Succeed())

			all, err := proxy.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
			Expect(all[0].Price).To(Equal(9999.0))

			Expect(proxy.Remove(ctx, cheaper)).To(Succeed())
			all, err = proxy.Filter(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})

		// Given an admin session
		// When we log out
		// Then operations should fail with NoUserError
		It("should end the session on logout", func() {
			// Act
			proxy.Logout()

			// Assert
			Expect(proxy.CheckAccess()).To(BeFalse())
			Expect(srvErrors.IsNoUserError(proxy.Add(ctx, rixos))).To(BeTrue())
		})
	})

	Context("as user", func() {
		BeforeEach(func() {
			Expect(s.Resorts().Add(ctx, rixos)).To(Succeed())
			ok, err := proxy.Login(ctx, "guest", "guest")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		// Given a user session
		// When we read resorts
		// Then the rows should be returned
		It("should allow reads", func() {
			all, err := proxy.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))

			found, err := proxy.Filter(ctx, store.Eq("name", "rixos"))
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(1))
		})

		// Given a user session
		// When we attempt writes
		// Then they should fail with UnauthorizedError and leave the store untouched
		It("should deny writes with UnauthorizedError", func() {
			// Act
			addErr := proxy.Add(ctx, models.Resort{Name: "asteria", Price: 7999})
			removeErr := proxy.Remove(ctx, rixos)
			updateErr := proxy.Update(ctx, rixos, models.Resort{Name: "rixos", Price: 1})

			// Assert
			for _, err := range []error{addErr, removeErr, updateErr} {
				Expect(srvErrors.IsUnauthorizedError(err)).To(BeTrue())
				Expect(srvErrors.IsNoUserError(err)).To(BeFalse())
			}
			all, err := s.Resorts().GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
			Expect(all[0].Price).To(Equal(12999.0))
		})
	})

	Context("with custom privileges", func() {
		// Given privileges that put users at admin level
		// When a user writes
		// Then the write should be allowed
		It("should honour the configured levels", func() {
			// Arrange
			proxy = access.NewProxy[models.Resort](s.Resorts(), s.Users(), access.Privileges{
				models.RoleAdmin: access.LevelAdmin,
				models.RoleUser:  access.LevelAdmin,
			})
			ok, err := proxy.Login(ctx, "guest", "guest")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			// Act
			err = proxy.Add(ctx, rixos)

			// Assert
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("DefaultPrivileges", func() {
		It("should give admin a lower level than user", func() {
			p := access.DefaultPrivileges()
			Expect(p[models.RoleAdmin]).To(Equal(-1))
			Expect(p[models.RoleUser]).To(Equal(0))
		})
	})
})
