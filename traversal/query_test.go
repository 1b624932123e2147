package traversal_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wiretrace/xnet/netlist"
	"github.com/wiretrace/xnet/traversal"
)

func connect(m *netlist.Model, net string, pins map[string]string) {
	for refdes, pin := range pins {
		m.Connect(net, refdes, pin)
	}
}

var _ = Describe("pin and net shape queries", func() {
	It("refuses to traverse from a ground net", func() {
		m := netlist.New()
		connect(m, "GND", map[string]string{"R1": "1"})

		_, err := traversal.TraverseFromNet(m, "GND", traversal.Options{})
		Expect(err).To(HaveOccurred())
	})

	It("reaches through a passive component to a far net", func() {
		m := netlist.New()
		connect(m, "A", map[string]string{"R1": "1"})
		connect(m, "B", map[string]string{"R1": "2", "R2": "1"})
		connect(m, "C", map[string]string{"R2": "2"})
		m.Component("R1").MPN = "RC0603FR-0710KL"
		m.Component("R2").MPN = "RC0603FR-0710KL"

		result, err := traversal.TraverseFromNet(m, "A", traversal.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.TotalComponents).To(Equal(2))
		Expect(result.VisitedNets).To(ConsistOf("A", "B", "C"))
	})

	It("terminates traversal at an active component", func() {
		m := netlist.New()
		connect(m, "SIG_A", map[string]string{"U1": "1"})
		connect(m, "SIG_B", map[string]string{"U1": "2", "R1": "1"})
		connect(m, "SIG_C", map[string]string{"R1": "2"})
		m.Component("U1").MPN = "LM358"

		result, err := traversal.TraverseFromNet(m, "SIG_A", traversal.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.TotalComponents).To(Equal(1))
		Expect(result.VisitedNets).To(Equal([]string{"SIG_A"}))
	})

	It("stops expanding past a power rail once its immediate endpoints are recorded", func() {
		m := netlist.New()
		connect(m, "SIG", map[string]string{"R1": "1"})
		connect(m, "+3V3", map[string]string{"R1": "2", "U1": "1"})
		connect(m, "FAR", map[string]string{"U1": "2"})
		m.Component("R1").MPN = "RC0603FR-0710KL"
		m.Component("U1").MPN = "LM358"

		result, err := traversal.TraverseFromNet(m, "SIG", traversal.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.VisitedNets).NotTo(ContainElement("FAR"))
		Expect(result.TotalComponents).To(Equal(2))
	})

	It("reports a no-connect pin without running a traversal", func() {
		m := netlist.New()
		m.Component("R9").SetPin("1", netlist.NC)

		result, err := traversal.TraverseFromPin(m, "R9.1", traversal.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.CircuitHash).To(Equal("nc-R9.1"))
		Expect(result.Net).To(Equal(netlist.NC))
	})

	It("produces the same fingerprint regardless of starting point", func() {
		m := netlist.New()
		connect(m, "A", map[string]string{"R1": "1"})
		connect(m, "B", map[string]string{"R1": "2", "R2": "1"})
		connect(m, "C", map[string]string{"R2": "2"})
		m.Component("R1").MPN = "RC0603FR-0710KL"
		m.Component("R2").MPN = "RC0603FR-0710KL"

		fromA, err := traversal.TraverseFromNet(m, "A", traversal.Options{})
		Expect(err).NotTo(HaveOccurred())
		fromC, err := traversal.TraverseFromNet(m, "C", traversal.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(fromA.CircuitHash).To(Equal(fromC.CircuitHash))
	})

	It("agrees with the equivalent net query when starting from a pin", func() {
		m := netlist.New()
		connect(m, "A", map[string]string{"R1": "1"})
		connect(m, "B", map[string]string{"R1": "2", "R2": "1"})
		connect(m, "C", map[string]string{"R2": "2"})
		m.Component("R1").MPN = "RC0603FR-0710KL"
		m.Component("R2").MPN = "RC0603FR-0710KL"

		fromPin, err := traversal.TraverseFromPin(m, "R1.1", traversal.Options{})
		Expect(err).NotTo(HaveOccurred())
		fromNet, err := traversal.TraverseFromNet(m, "A", traversal.Options{})
		Expect(err).NotTo(HaveOccurred())

		Expect(fromPin.CircuitHash).To(Equal(fromNet.CircuitHash))
		Expect(fromPin.TotalComponents).To(Equal(fromNet.TotalComponents))
		Expect(fromPin.VisitedNets).To(ConsistOf(fromNet.VisitedNets))
	})

	It("resolves component and pin names case-insensitively", func() {
		m := netlist.New()
		connect(m, "A", map[string]string{"R1": "1"})
		m.Component("R1").MPN = "RC0603FR-0710KL"

		result, err := traversal.TraverseFromPin(m, "r1.1", traversal.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Net).To(Equal("A"))
	})

	It("rejects an unknown net", func() {
		m := netlist.New()
		_, err := traversal.TraverseFromNet(m, "NOPE", traversal.Options{})
		Expect(err).To(HaveOccurred())
	})
})
