package state_test

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/iapssh/internal/state"
)

var _ = Describe("Store", func() {
	var (
		dir   string
		store *state.Store
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		store = state.NewStore(filepath.Join(dir, "nested", "iapssh-state.yaml"))
	})

	Describe("Load", func() {
		When("no record was saved", func() {
			It("reports that no record exists", func() {
				_, ok, err := store.Load()

				Expect(err).ToNot(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})

		When("the record is corrupt", func() {
			It("returns an error", func() {
				Expect(os.MkdirAll(filepath.Dir(store.Path), 0o700)).To(Succeed())
				Expect(os.WriteFile(store.Path, []byte("keysDir: [unterminated"), 0o600)).To(Succeed())

				_, _, err := store.Load()

				Expect(err).To(MatchError(ContainSubstring("failed to decode state")))
			})
		})

		When("the record has no entries", func() {
			It("reports that no record exists", func() {
				Expect(os.MkdirAll(filepath.Dir(store.Path), 0o700)).To(Succeed())
				Expect(os.WriteFile(store.Path, []byte("entries:\n  - createdAt: 2026-01-01T00:00:00Z\n"), 0o600)).To(Succeed())

				_, ok, err := store.Load()

				Expect(err).ToNot(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})
	})

	Describe("Save", func() {
		It("round-trips the record", func() {
			created := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

			rec := state.Record{Entries: []state.Entry{{KeysDir: "/tmp/iapssh-abc", CreatedAt: created}}}
			Expect(store.Save(rec)).To(Succeed())

			loaded, ok, err := store.Load()
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(loaded.Entries).To(HaveLen(1))
			Expect(loaded.Entries[0].KeysDir).To(Equal("/tmp/iapssh-abc"))
			Expect(loaded.Entries[0].CreatedAt.Equal(created)).To(BeTrue())
		})

		It("restricts the record to its owner", func() {
			if runtime.GOOS == "windows" {
				Skip("POSIX permission bits are not enforced on Windows")
			}

			Expect(store.Add(state.Entry{KeysDir: "/tmp/iapssh-abc"})).To(Succeed())

			info, err := os.Stat(store.Path)
			Expect(err).ToNot(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
		})

		It("leaves no temporary files behind", func() {
			Expect(store.Add(state.Entry{KeysDir: "/tmp/iapssh-abc"})).To(Succeed())

			entries, err := os.ReadDir(filepath.Dir(store.Path))
			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})
	})

	Describe("Add", func() {
		It("keeps the directories of earlier runs", func() {
			Expect(store.Add(state.Entry{KeysDir: "/tmp/iapssh-a"})).To(Succeed())
			Expect(store.Add(state.Entry{KeysDir: "/tmp/iapssh-b"})).To(Succeed())

			rec, ok, err := store.Load()
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(rec.Entries).To(HaveLen(2))
			Expect(rec.Entries[0].KeysDir).To(Equal("/tmp/iapssh-a"))
			Expect(rec.Entries[1].KeysDir).To(Equal("/tmp/iapssh-b"))
		})

		It("records a pinned directory once", func() {
			Expect(store.Add(state.Entry{KeysDir: "/keys"})).To(Succeed())
			Expect(store.Add(state.Entry{KeysDir: "/keys"})).To(Succeed())

			rec, _, err := store.Load()
			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Entries).To(HaveLen(1))
		})

		It("refuses to replace a corrupt record", func() {
			Expect(os.MkdirAll(filepath.Dir(store.Path), 0o700)).To(Succeed())
			Expect(os.WriteFile(store.Path, []byte("entries: [unterminated"), 0o600)).To(Succeed())

			Expect(store.Add(state.Entry{KeysDir: "/tmp/iapssh-a"})).To(MatchError(ContainSubstring("failed to decode state")))
		})
	})

	Describe("Clear", func() {
		It("removes the record", func() {
			Expect(store.Add(state.Entry{KeysDir: "/tmp/iapssh-abc"})).To(Succeed())

			Expect(store.Clear()).To(Succeed())

			_, ok, err := store.Load()
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("accepts a missing record", func() {
			Expect(store.Clear()).To(Succeed())
		})
	})
})
