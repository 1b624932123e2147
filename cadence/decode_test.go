package cadence_test

import (
	"io"
	"strings"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wiretrace/xnet/cadence"
	"github.com/wiretrace/xnet/cadence/mocks"
	"github.com/wiretrace/xnet/internal/logging"
)

const netConnFixture = `
NET_NAME
'VIN_NET'
NODE_NAME U1 1
`

const partFixture = `
PART_NAME
U1 'REG_SOT23':
MFGR_PN=REG123;
`

const chipFixture = `
primitive 'REG_SOT23'
pin
'VIN':
PIN_NUMBER='(1)';
end_pin;
`

var _ = Describe("DecodeProject", func() {
	It("joins all three files read through a FileLocator", func() {
		ctrl := gomock.NewController(GinkgoT())
		loc := mocks.NewMockFileLocator(ctrl)
		loc.EXPECT().Open("pstxnet.dat").Return(io.NopCloser(strings.NewReader(netConnFixture)), nil)
		loc.EXPECT().Open("pstxprt.dat").Return(io.NopCloser(strings.NewReader(partFixture)), nil)
		loc.EXPECT().Open("pstchip.dat").Return(io.NopCloser(strings.NewReader(chipFixture)), nil)

		model, err := cadence.DecodeProject(loc, logging.Discard())
		Expect(err).NotTo(HaveOccurred())

		comp := model.Components["U1"]
		Expect(comp).NotTo(BeNil())
		Expect(comp.MPN).To(Equal("REG123"))
		Expect(comp.Pins["1"].Name).To(Equal("VIN"))
		Expect(comp.Pins["1"].Net).To(Equal("VIN_NET"))
	})
})
