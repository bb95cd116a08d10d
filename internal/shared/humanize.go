package shared

import (
	"fmt"
	"math"
	"strconv"
)

const fileSizeThreshold = 1024

var fileSizeUnits = []string{"kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// FileSize is a byte count scaled to a display unit.
type FileSize struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

func (f FileSize) String() string {
	return f.Value + " " + f.Unit
}

// HumanFileSize scales bytes by powers of 1024 until the magnitude drops below 1024 or the largest unit is reached.
//
// Counts below the threshold are returned unscaled with unit "B"; scaled values carry one decimal place.
func HumanFileSize(bytes float64) FileSize {
	if math.Abs(bytes) < fileSizeThreshold {
		return FileSize{Value: strconv.FormatFloat(bytes, 'f', -1, 64), Unit: "B"}
	}

	u := -1
	for {
		bytes /= fileSizeThreshold
		u++
		if math.Abs(bytes) < fileSizeThreshold || u >= len(fileSizeUnits)-1 {
			break
		}
	}
	return FileSize{Value: fmt.Sprintf("%.1f", bytes), Unit: fileSizeUnits[u]}
}

// ToFloat converts JSON-decoded and native numeric values to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
