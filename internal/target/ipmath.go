package target

import (
	"math/bits"
	"strconv"
	"strings"
)

// sampleModulus is 2^32-1, not 2^32: 255.255.255.254 + 1 wraps to 0.0.0.0.
// Kept so previews match what the dashboard has always shown.
const sampleModulus = 0xFFFFFFFF

// PreviewSize bounds every targets preview.
const PreviewSize = 5

func parseOctets(s string) ([4]uint32, bool) {
	var out [4]uint32
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return out, false
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return out, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return out, false
		}
		out[i] = uint32(n)
	}
	return out, true
}

// IPToNumber converts a dotted quad to its 32-bit integer form.
func IPToNumber(ip string) (uint32, bool) {
	o, ok := parseOctets(ip)
	if !ok {
		return 0, false
	}
	return o[0]<<24 | o[1]<<16 | o[2]<<8 | o[3], true
}

// NumberToIP is the inverse of IPToNumber.
func NumberToIP(n uint32) string {
	return strconv.Itoa(int(n>>24)) + "." +
		strconv.Itoa(int(n>>16&0xFF)) + "." +
		strconv.Itoa(int(n>>8&0xFF)) + "." +
		strconv.Itoa(int(n&0xFF))
}

// GenerateSampleIPs returns up to count addresses following subnet. It
// returns nil when subnet is not a dotted quad.
func GenerateSampleIPs(subnet string, count int) []string {
	base, ok := IPToNumber(strings.TrimSpace(subnet))
	if !ok || count <= 0 {
		return nil
	}
	out := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		next := (uint64(base) + uint64(i)) % sampleModulus
		out = append(out, NumberToIP(uint32(next)))
	}
	return out
}

// MaskToPrefix accepts a prefix length ("24") or a dotted mask
// ("255.255.255.0"). Dotted masks are not required to be contiguous; the
// prefix is the number of set bits.
func MaskToPrefix(mask string) (int, bool) {
	mask = strings.TrimSpace(mask)
	if mask == "" {
		return 0, false
	}
	if !strings.Contains(mask, ".") {
		n, err := strconv.Atoi(mask)
		if err != nil || n < 0 || n > 32 {
			return 0, false
		}
		return n, true
	}
	o, ok := parseOctets(mask)
	if !ok {
		return 0, false
	}
	prefix := 0
	for _, v := range o {
		prefix += bits.OnesCount8(uint8(v))
	}
	return prefix, true
}

// EstimateHostCount reserves network and broadcast addresses when the prefix
// leaves at least two host bits.
func EstimateHostCount(prefix int) int64 {
	if prefix < 0 {
		prefix = 0
	}
	hostBits := 32 - prefix
	if hostBits < 0 {
		hostBits = 0
	}
	hosts := int64(1) << uint(hostBits)
	if hostBits >= 2 {
		return hosts - 2
	}
	return hosts
}
