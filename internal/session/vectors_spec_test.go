package session

import (
	"context"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"enigma/internal/catalog"
	"enigma/internal/message"
	"enigma/internal/settings"
)

var _ = ginkgo.Describe("Historical machines", func() {
	var cat *catalog.Catalog

	ginkgo.BeforeEach(func() {
		var err error
		cat, err = catalog.Builtin()
		gomega.Expect(err).To(gomega.Succeed())
	})

	ginkgo.DescribeTable("Enigma I, wheels I II III, reflector B",
		func(positions, in, want, end string) {
			key := settings.Default()
			key.Positions = positions
			s, err := New(cat, key)
			gomega.Expect(err).To(gomega.Succeed())

			out, err := s.Type(in)
			gomega.Expect(err).To(gomega.Succeed())
			gomega.Expect(out).To(gomega.Equal(want))
			gomega.Expect(s.Positions()).To(gomega.Equal(end))
		},
		ginkgo.Entry("from AAA", "AAA", "AAAAA", "BDZGO", "AAF"),
		ginkgo.Entry("right wheel carries the middle", "AAT", "AAAAA", "BMUQO", "ABY"),
		ginkgo.Entry("middle wheel double steps", "ADU", "AAAA", "EQIB", "BFY"),
	)

	ginkgo.It("matches the three-wheel machine on an M4 with Beta at A and thin reflector B", func() {
		key := settings.Settings{
			Model:     "M4",
			Rotors:    []string{"Beta", "I", "II", "III"},
			Reflector: "UKW-B-thin",
		}
		s, err := New(cat, key)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(s.Type("AAAAA")).To(gomega.Equal("BDZGO"))
		gomega.Expect(s.Positions()).To(gomega.Equal("AAAF"))
	})

	ginkgo.It("deciphers what it enciphers with a full daily key", func() {
		key := settings.Settings{
			Model:     "M3",
			Rotors:    []string{"VI", "I", "VIII"},
			Reflector: "UKW-C",
			Rings:     []int{1, 8, 13},
			Positions: "QEV",
			Plugs:     []string{"AN", "EZ", "HK", "IJ", "LR", "MQ", "OT", "PV", "SW", "UX"},
		}
		plain := message.Prepare("Wetterbericht: Nebel über der Biskaya, Sicht schlecht.")
		jobs := []Job{
			{Name: "encipher", Settings: &key, Text: plain},
		}
		results, err := RunBatch(context.Background(), cat, jobs, 1)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(results[0].Err).NotTo(gomega.HaveOccurred())
		cipher := results[0].Output
		gomega.Expect(cipher).To(gomega.HaveLen(len(plain)))

		for i := range plain {
			gomega.Expect(cipher[i]).NotTo(gomega.Equal(plain[i]))
		}

		back, err := RunBatch(context.Background(), cat, []Job{{Name: "decipher", Settings: &key, Text: cipher}}, 1)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(back[0].Output).To(gomega.Equal(plain))
	})
})
