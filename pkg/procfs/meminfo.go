package procfs

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/multiplealiases/zfree/pkg/quantity"
	"github.com/pkg/errors"
)

// ParseMeminfo extracts the memory record from captured /proc/meminfo text.
// Fields come back in display order (total, used, avail, cache, free), all
// in KiB.
//
// "used" is total minus MemAvailable, not total minus free minus
// buffers/cache: pages the kernel would reclaim under pressure count as
// available, which matches what recent free(1) reports.
func ParseMeminfo(meminfo string) (quantity.Record, error) {
	fields := map[string]int64{}

	scanner := bufio.NewScanner(strings.NewReader(meminfo))
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())

		// Sanity checks: skip lines that are not "Key: value kB".
		if len(parts) != 3 || !strings.HasSuffix(parts[0], ":") || parts[2] != "kB" {
			continue
		}
		v, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		fields[strings.TrimSuffix(parts[0], ":")] = v
	}

	if _, ok := fields["MemAvailable"]; !ok {
		return nil, errors.New("MemAvailable absent from /proc/meminfo; how old is this kernel?")
	}
	for _, k := range []string{"MemTotal", "MemFree", "Buffers", "Cached"} {
		if _, ok := fields[k]; !ok {
			return nil, errors.Errorf("%s absent from /proc/meminfo", k)
		}
	}

	total := fields["MemTotal"]
	available := fields["MemAvailable"]
	used := total - available
	cache := fields["Buffers"] + fields["Cached"]
	free := fields["MemFree"]

	return quantity.Record{
		{Name: "total", Quantity: quantity.New(float64(total), quantity.KiB)},
		{Name: "used", Quantity: quantity.New(float64(used), quantity.KiB)},
		{Name: "avail", Quantity: quantity.New(float64(available), quantity.KiB)},
		{Name: "cache", Quantity: quantity.New(float64(cache), quantity.KiB)},
		{Name: "free", Quantity: quantity.New(float64(free), quantity.KiB)},
	}, nil
}
