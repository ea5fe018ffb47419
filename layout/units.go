package layout

// Conversion constants between pt and mm. Sheet geometry travels in mm,
// typography in pt; the boundary conversions happen here.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// ToMm converts a point value to millimeters.
func ToMm(pt float64) float64 { return pt * PtToMm }

// ToPt converts a millimeter value to points.
func ToPt(mm float64) float64 { return mm * MmToPt }
