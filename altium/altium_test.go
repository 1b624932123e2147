package altium_test

import (
	"fmt"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wiretrace/xnet/altium"
	"github.com/wiretrace/xnet/recstream"
)

// rec is a tiny builder for synthetic records in these specs: it
// assigns Index and wires up RECORD/OwnerIndex so tests read as data,
// not byte-stream trivia.
func rec(index int, tag int, owner int, attrs map[string]string) recstream.Record {
	all := map[string]string{
		"RECORD": strconv.Itoa(tag),
	}
	if owner >= 0 {
		all["OwnerIndex"] = strconv.Itoa(owner)
	}
	for k, v := range attrs {
		all[k] = v
	}
	return recstream.Record{Index: index, Attrs: all}
}

var _ = Describe("Altium hierarchy and net extraction", func() {
	It("decodes an empty schematic to an empty model with no error", func() {
		model, err := altium.Decode([]byte("JUNKXY"), altium.DiscardLog)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Nets).To(BeEmpty())
		Expect(model.Components).To(BeEmpty())
	})

	It("suppresses a net containing only a single pin", func() {
		records := []recstream.Record{
			rec(0, recstream.TagComponent, -1, nil),
			rec(1, recstream.TagDesignator, 0, map[string]string{"Text": "R1"}),
			rec(2, recstream.TagPin, 0, map[string]string{
				"Designator": "1", "Name": "1",
				"Location.X": "0", "Location.Y": "0",
				"PinLength": "10", "PinConglomerate": "0",
			}),
		}
		tree := altium.BuildTree(records)
		devices := altium.NewSelector(tree).Select()
		Expect(devices).To(HaveLen(1))

		groups := altium.Group(devices)
		Expect(groups).To(HaveLen(1))
		Expect(groups[0]).To(HaveLen(1))

		model, err := altium.DecodeGroupsForTest(tree, groups)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Nets).To(BeEmpty())
	})

	It("unions power ports sharing Text at arbitrarily distant coordinates", func() {
		records := []recstream.Record{
			rec(0, recstream.TagPowerPort, -1, map[string]string{"Text": "GND", "Location.X": "0", "Location.Y": "0"}),
			rec(1, recstream.TagPowerPort, -1, map[string]string{"Text": "GND", "Location.X": "999999999", "Location.Y": "999999999"}),
		}
		tree := altium.BuildTree(records)
		devices := altium.NewSelector(tree).Select()
		groups := altium.Group(devices)
		Expect(groups).To(HaveLen(1))
		Expect(groups[0]).To(HaveLen(2))
	})

	It("drops a comment that resolves via '=' indirection to the same text as Value", func() {
		records := []recstream.Record{
			rec(0, recstream.TagComponent, -1, nil),
			rec(1, recstream.TagDesignator, 0, map[string]string{"Text": "R1"}),
			rec(2, recstream.TagParameter, 0, map[string]string{"Name": "Value", "Text": "10k"}),
			rec(3, recstream.TagParameter, 0, map[string]string{"Name": "Comment", "Text": "=Value"}),
		}
		tree := altium.BuildTree(records)
		extracted := altium.ExtractComponents(tree)
		Expect(extracted).To(HaveLen(1))
		ec := extracted[0]
		Expect(ec.Value).To(Equal("10k"))
		Expect(ec.Comment).To(BeEmpty())
	})

	It("names a net after the lexicographically smallest refdes/pin when no label exists", func() {
		records := []recstream.Record{
			rec(0, recstream.TagComponent, -1, nil),
			rec(1, recstream.TagDesignator, 0, map[string]string{"Text": "R2"}),
			rec(2, recstream.TagPin, 0, map[string]string{
				"Designator": "1",
				"Location.X": "0", "Location.Y": "0",
				"PinLength": "10", "PinConglomerate": "0",
			}),
			rec(3, recstream.TagComponent, -1, nil),
			rec(4, recstream.TagDesignator, 3, map[string]string{"Text": "R1"}),
			rec(5, recstream.TagPin, 3, map[string]string{
				"Designator": "2",
				"Location.X": "0", "Location.X_Frac": "100", "Location.Y": "0",
				"PinLength": "0", "PinConglomerate": "0",
			}),
			// a wire bridging R2.1's endpoint (10,0) to R1.2's origin (100,0);
			// wire vertices are taken verbatim, pin vertices through the
			// base*10000+frac scaling (spec §4.3.2), so R1.2's origin is
			// reached via Location.X_Frac rather than a scaled Location.X
			rec(6, recstream.TagWire, -1, map[string]string{
				"X1": "10", "Y1": "0", "X2": "100", "Y2": "0",
			}),
		}
		tree := altium.BuildTree(records)
		devices := altium.NewSelector(tree).Select()
		groups := altium.Group(devices)
		Expect(groups).To(HaveLen(1))

		name := altium.NameNet(groups[0], tree, altium.UnnamedNetCounter())
		Expect(name).To(Equal("NetR1_2"))
	})

	It("mints successive UnnamedNet<k> names for unnamed nets", func() {
		counter := altium.UnnamedNetCounter()
		Expect(counter()).To(Equal("UnnamedNet1"))
		Expect(counter()).To(Equal("UnnamedNet2"))
	})

	It("keeps the maintained invariant between N and C after a full decode", func() {
		records := []recstream.Record{
			rec(0, recstream.TagComponent, -1, nil),
			rec(1, recstream.TagDesignator, 0, map[string]string{"Text": "R1"}),
			rec(2, recstream.TagParameter, 0, map[string]string{"Name": "Manufacturer Part Number", "Text": " 10k-0603 "}),
			rec(3, recstream.TagPin, 0, map[string]string{
				"Designator": "1", "Name": "VIN",
				"Location.X": "0", "Location.Y": "0",
				"PinLength": "10", "PinConglomerate": "0",
			}),
			rec(4, recstream.TagPin, 0, map[string]string{
				"Designator": "2",
				"Location.X": "0", "Location.X_Frac": "100", "Location.Y": "0",
				"PinLength": "10", "PinConglomerate": "2", // 180 degrees: origin (100,0), endpoint (90,0)
			}),
			rec(5, recstream.TagWire, -1, map[string]string{
				"X1": "10", "Y1": "0", "X2": "90", "Y2": "0",
			}),
		}
		tree := altium.BuildTree(records)
		devices := altium.NewSelector(tree).Select()
		Expect(devices).To(HaveLen(3)) // 2 pins + 1 wire

		groups := altium.Group(devices)
		Expect(groups).To(HaveLen(1))

		model, err := altium.DecodeGroupsForTest(tree, groups)
		Expect(err).NotTo(HaveOccurred())

		problems := model.Verify()
		Expect(problems).To(BeEmpty())

		comp := model.Components["R1"]
		Expect(comp.MPN).To(Equal("10k-0603"))
		Expect(comp.Pins["1"].Name).To(Equal("VIN"))
		Expect(comp.Pins["1"].Bare()).To(BeFalse())
		Expect(comp.Pins["2"].Bare()).To(BeTrue())
		fmt.Fprint(GinkgoWriter, "net name: ", comp.Pins["1"].Net, "\n")
	})
})
