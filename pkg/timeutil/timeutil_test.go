package timeutil_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/pkg/timeutil"
)

func TestTimeutil(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Timeutil Suite")
}

var _ = Describe("DateOnly", func() {
	It("keeps a plain date unchanged", func() {
		Expect(timeutil.DateOnly("2026-03-15")).To(Equal("2026-03-15"))
	})

	It("strips the time portion after a space", func() {
		Expect(timeutil.DateOnly("2026-03-15 09:30:00")).To(Equal("2026-03-15"))
	})

	It("strips the time portion after a T separator", func() {
		Expect(timeutil.DateOnly("2026-03-15T09:30:00Z")).To(Equal("2026-03-15"))
	})

	It("returns empty for empty input", func() {
		Expect(timeutil.DateOnly("")).To(Equal(""))
		Expect(timeutil.DateOnly("   ")).To(Equal(""))
	})

	It("is idempotent", func() {
		inputs := []string{"2026-03-15", "2026-03-15 09:30:00", "2026-03-15T09:30:00Z", ""}
		for _, in := range inputs {
			once := timeutil.DateOnly(in)
			Expect(timeutil.DateOnly(once)).To(Equal(once))
		}
	})
})

var _ = Describe("ParseLenient", func() {
	It("parses the canonical space-separated form as UTC", func() {
		t, err := timeutil.ParseLenient("2026-03-15 09:30:01")
		Expect(err).ToNot(HaveOccurred())
		Expect(t.Location()).To(Equal(time.UTC))
		Expect(t.Hour()).To(Equal(9))
		Expect(t.Second()).To(Equal(1))
	})

	It("parses RFC3339 input", func() {
		t, err := timeutil.ParseLenient("2026-03-15T09:30:00Z")
		Expect(err).ToNot(HaveOccurred())
		Expect(t.Minute()).To(Equal(30))
	})

	It("parses ISO input without a zone as UTC", func() {
		t, err := timeutil.ParseLenient("2026-03-15T09:30:00")
		Expect(err).ToNot(HaveOccurred())
		Expect(t.Location()).To(Equal(time.UTC))
	})

	It("parses a date-only value at midnight", func() {
		t, err := timeutil.ParseLenient("2026-03-15")
		Expect(err).ToNot(HaveOccurred())
		Expect(t.Hour()).To(Equal(0))
	})

	It("rejects garbage", func() {
		_, err := timeutil.ParseLenient("not a date")
		Expect(err).To(MatchError(timeutil.ErrUnparseable))
	})

	It("rejects empty input", func() {
		_, err := timeutil.ParseLenient("")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("NormalizeDateTime", func() {
	It("rewrites ISO input into the canonical form", func() {
		out, err := timeutil.NormalizeDateTime("2026-03-15T09:30:00Z")
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal("2026-03-15 09:30:00"))
	})

	It("leaves canonical input unchanged", func() {
		out, err := timeutil.NormalizeDateTime("2026-03-15 09:30:00")
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal("2026-03-15 09:30:00"))
	})

	It("is idempotent over its own output", func() {
		once, err := timeutil.NormalizeDateTime("2026-03-15T09:30:00")
		Expect(err).ToNot(HaveOccurred())
		twice, err := timeutil.NormalizeDateTime(once)
		Expect(err).ToNot(HaveOccurred())
		Expect(twice).To(Equal(once))
	})

	It("propagates parse failures", func() {
		_, err := timeutil.NormalizeDateTime("15/03/2026")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Canonical", func() {
	It("converts non-UTC times to UTC before formatting", func() {
		loc := time.FixedZone("UTC+7", 7*3600)
		t := time.Date(2026, 3, 15, 16, 30, 0, 0, loc)
		Expect(timeutil.Canonical(t)).To(Equal("2026-03-15 09:30:00"))
	})
})

var _ = Describe("MinutesOfDay", func() {
	It("converts HH:MM into minutes past midnight", func() {
		m, err := timeutil.MinutesOfDay("09:00")
		Expect(err).ToNot(HaveOccurred())
		Expect(m).To(Equal(540))
	})

	It("handles midnight and late evening", func() {
		m, err := timeutil.MinutesOfDay("00:00")
		Expect(err).ToNot(HaveOccurred())
		Expect(m).To(Equal(0))

		m, err = timeutil.MinutesOfDay("23:59")
		Expect(err).ToNot(HaveOccurred())
		Expect(m).To(Equal(1439))
	})

	It("rejects out-of-range and malformed values", func() {
		for _, bad := range []string{"24:00", "09:60", "0900", "", "nine"} {
			_, err := timeutil.MinutesOfDay(bad)
			Expect(err).To(HaveOccurred(), "expected %q to be rejected", bad)
		}
	})
})
