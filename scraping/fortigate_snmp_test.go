package scraping

import (
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
)

func TestSNMPValueString(t *testing.T) {
	tests := []struct {
		name     string
		pdu      gosnmp.SnmpPDU
		expected string
	}{
		{"octet string", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("branch-1")}, "branch-1"},
		{"object identifier", gosnmp.SnmpPDU{Type: gosnmp.ObjectIdentifier, Value: ".1.3.6.1.4.1.12356.101.1.100"}, ".1.3.6.1.4.1.12356.101.1.100"},
		{"counter", gosnmp.SnmpPDU{Type: gosnmp.Counter64, Value: uint64(1536)}, "1536"},
		{"integer", gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: 2}, "2"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, snmpValueString(test.pdu))
		})
	}
}
