package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/leave"
)

func TestLeaveRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "LeaveRepository Suite")
}

var _ = Describe("LeaveRepository", func() {
	var (
		db   *gorm.DB
		repo leave.Repository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&leave.Request{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewLeaveRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	request := func(id, userID string) *leave.Request {
		return &leave.Request{
			ID:        id,
			UserID:    userID,
			Username:  "staff1",
			StartDate: "2026-04-01",
			EndDate:   "2026-04-03",
			LeaveType: leave.TypeVacation,
			Reason:    "family trip",
			Status:    leave.StatusPending,
		}
	}

	It("round-trips a request", func() {
		Expect(repo.Create(request("l1", "staff-1"))).To(Succeed())

		found, err := repo.GetByID("l1")
		Expect(err).NotTo(HaveOccurred())
		Expect(found.Status).To(Equal(leave.StatusPending))
		Expect(found.StartDate).To(Equal("2026-04-01"))
	})

	It("maps a missing id to the domain not-found error", func() {
		_, err := repo.GetByID("missing")
		Expect(err).To(Equal(internal.ErrLeaveNotFound))
	})

	It("filters by a set of user ids", func() {
		Expect(repo.Create(request("l1", "staff-1"))).To(Succeed())
		Expect(repo.Create(request("l2", "staff-2"))).To(Succeed())
		Expect(repo.Create(request("l3", "staff-3"))).To(Succeed())

		found, err := repo.ListByUserIDs([]string{"staff-1", "staff-3"})
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(HaveLen(2))
	})

	It("returns an empty slice for an empty id set", func() {
		Expect(repo.Create(request("l1", "staff-1"))).To(Succeed())

		found, err := repo.ListByUserIDs(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeEmpty())
	})

	It("persists a status transition", func() {
		req := request("l1", "staff-1")
		Expect(repo.Create(req)).To(Succeed())

		req.Status = leave.StatusApproved
		Expect(repo.Update(req)).To(Succeed())

		found, err := repo.GetByID("l1")
		Expect(err).NotTo(HaveOccurred())
		Expect(found.Status).To(Equal(leave.StatusApproved))
	})

	It("deletes a withdrawn request", func() {
		Expect(repo.Create(request("l1", "staff-1"))).To(Succeed())
		Expect(repo.Delete("l1")).To(Succeed())

		_, err := repo.GetByID("l1")
		Expect(err).To(Equal(internal.ErrLeaveNotFound))
	})
})
