package altium_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAltium(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "altium suite")
}
