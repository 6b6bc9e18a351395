package ipsecvpn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		numBytes uint64
		expected string
	}{
		{0, "0.00 bytes"},
		{512, "512.00 bytes"},
		{1023, "1023.00 bytes"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1073741824, "1.00 GB"},
		{1099511627776, "1.00 TB"},
		// No unit past TB, large values stay in TB.
		{1125899906842624, "1024.00 TB"},
		{2251799813685248, "2048.00 TB"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, humanBytes(test.numBytes), "be the same.")
	}
}
