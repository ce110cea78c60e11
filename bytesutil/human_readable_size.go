package bytesutil

import "fmt"

type sizeUnit struct {
	limit  int64
	suffix string
}

// Units in ascending order; a size is formatted with the first unit whose
// next step it does not reach.
var (
	binaryUnits = []sizeUnit{
		{1 << 10, "B"},
		{1 << 20, "KiB"},
		{1 << 30, "MiB"},
		{1 << 40, "GiB"},
		{1 << 50, "TiB"},
		{1 << 60, "PiB"},
	}
	decimalUnits = []sizeUnit{
		{1_000, "B"},
		{1_000_000, "KB"},
		{1_000_000_000, "MB"},
		{1_000_000_000_000, "GB"},
		{1_000_000_000_000_000, "TB"},
		{1_000_000_000_000_000_000, "PB"},
	}
)

// BinaryFormat formats size with IEC units (KiB, MiB, ...)
func BinaryFormat(size int64) string {
	return format(size, binaryUnits, "EiB")
}

// DecimalFormat formats size with SI units (KB, MB, ...)
func DecimalFormat(size int64) string {
	return format(size, decimalUnits, "EB")
}

func format(size int64, units []sizeUnit, topSuffix string) string {
	if size < 0 {
		return ""
	}
	if size < units[0].limit {
		return fmt.Sprintf("%d B", size)
	}
	for i := 1; i < len(units); i++ {
		if size < units[i].limit {
			return fmt.Sprintf("%.2f %s", float64(size)/float64(units[i-1].limit), units[i].suffix)
		}
	}
	return fmt.Sprintf("%.2f %s", float64(size)/float64(units[len(units)-1].limit), topSuffix)
}
