package attendance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/directory"
)

// Stub service so handler tests exercise only HTTP translation.
type stubAttendanceService struct {
	checkInRec  *attendance.Record
	checkInErr  error
	checkOutRec *attendance.Record
	checkOutErr error
	views       []attendance.RecordView
}

func (s *stubAttendanceService) CheckIn(ctx context.Context, user *directory.User, dto attendance.CheckInDTO) (*attendance.Record, error) {
	return s.checkInRec, s.checkInErr
}

func (s *stubAttendanceService) CheckOut(ctx context.Context, user *directory.User) (*attendance.Record, error) {
	return s.checkOutRec, s.checkOutErr
}

func (s *stubAttendanceService) ManualEdit(actor *directory.User, id string, dto attendance.ManualEditDTO) (*attendance.Record, error) {
	return nil, internal.ErrRecordNotFound
}

func (s *stubAttendanceService) Delete(actor *directory.User, id string) error {
	return nil
}

func (s *stubAttendanceService) Ledger(viewer *directory.User) ([]attendance.RecordView, error) {
	return s.views, nil
}

var _ = Describe("Attendance Handler", func() {
	var (
		handler *attendance.Handler
		stub    *stubAttendanceService
		user    *directory.User
	)

	BeforeEach(func() {
		stub = &stubAttendanceService{}
		handler = attendance.NewHandler(stub)
		user = &directory.User{ID: "staff-1", Username: "staff1", Role: directory.RoleStaff}
	})

	withUser := func(r *http.Request) *http.Request {
		return r.WithContext(directory.ContextWithUser(r.Context(), user))
	}

	Describe("CheckIn", func() {
		It("returns 401 without an authenticated user", func() {
			req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil)
			rr := httptest.NewRecorder()

			handler.CheckIn(rr, req)

			Expect(rr.Code).To(Equal(http.StatusUnauthorized))
		})

		It("accepts an empty body and returns 201", func() {
			stub.checkInRec = &attendance.Record{ID: "r1", UserID: user.ID, Status: attendance.StatusPresent}
			req := withUser(httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil))
			rr := httptest.NewRecorder()

			handler.CheckIn(rr, req)

			Expect(rr.Code).To(Equal(http.StatusCreated))

			var rec attendance.Record
			Expect(json.Unmarshal(rr.Body.Bytes(), &rec)).To(Succeed())
			Expect(rec.ID).To(Equal("r1"))
		})

		It("passes a JSON body through", func() {
			stub.checkInRec = &attendance.Record{ID: "r1"}
			body := bytes.NewBufferString(`{"location":"Remote"}`)
			req := withUser(httptest.NewRequest(http.MethodPost, "/attendance/check-in", body))
			rr := httptest.NewRecorder()

			handler.CheckIn(rr, req)

			Expect(rr.Code).To(Equal(http.StatusCreated))
		})

		It("maps an open-session conflict to 409", func() {
			stub.checkInErr = internal.ErrSessionAlreadyOpen
			req := withUser(httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil))
			rr := httptest.NewRecorder()

			handler.CheckIn(rr, req)

			Expect(rr.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("CheckOut", func() {
		It("maps a missing open session to 400", func() {
			stub.checkOutErr = internal.ErrNoOpenSession
			req := withUser(httptest.NewRequest(http.MethodPost, "/attendance/check-out", nil))
			rr := httptest.NewRecorder()

			handler.CheckOut(rr, req)

			Expect(rr.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps a minimum-stay rejection to 422 with details", func() {
			stub.checkOutErr = internal.NewMinimumStayError(25)
			req := withUser(httptest.NewRequest(http.MethodPost, "/attendance/check-out", nil))
			rr := httptest.NewRecorder()

			handler.CheckOut(rr, req)

			Expect(rr.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(rr.Body.String()).To(ContainSubstring("25"))
		})
	})

	Describe("Ledger", func() {
		It("wraps the views in a records envelope", func() {
			stub.views = []attendance.RecordView{{Record: attendance.Record{ID: "r1"}, Duration: "Active"}}
			req := withUser(httptest.NewRequest(http.MethodGet, "/attendance", nil))
			rr := httptest.NewRecorder()

			handler.Ledger(rr, req)

			Expect(rr.Code).To(Equal(http.StatusOK))

			var envelope struct {
				Records []attendance.RecordView `json:"records"`
			}
			Expect(json.Unmarshal(rr.Body.Bytes(), &envelope)).To(Succeed())
			Expect(envelope.Records).To(HaveLen(1))
			Expect(envelope.Records[0].Duration).To(Equal("Active"))
		})
	})
})
