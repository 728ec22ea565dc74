package timestamp

// RFC3339Nano renders a timestamp as 2006-01-02T15:04:05.999999999Z with all
// nine fraction digits.
const RFC3339Nano = "%Y-%m-%dT%H:%M:%S%nZ"

const (
	nsPerSec   = 1_000_000_000
	secsPerDay = 86400
)

// Format renders ns according to layout. It never fails; output longer than
// MaxBufSize is truncated.
func Format(layout string, ns uint64) string {
	secs, nsec := ns/nsPerSec, ns%nsPerSec
	year, month, day := Date(secs / secsPerDay)
	hour := (secs / 3600) % 24
	minute := (secs / 60) % 60
	sec := secs % 60

	var w BoundedWriter
	for i := 0; i < len(layout); i++ {
		c := layout[i]
		if c != '%' || i+1 == len(layout) {
			w.PutByte(c)
			continue
		}
		i++
		switch verb := layout[i]; verb {
		case 'Y':
			w.PutUint(year, 4)
		case 'm':
			w.PutUint(uint64(month), 2)
		case 'd':
			w.PutUint(uint64(day), 2)
		case 'H':
			w.PutUint(hour, 2)
		case 'M':
			w.PutUint(minute, 2)
		case 'S':
			w.PutUint(sec, 2)
		case 'n':
			w.PutByte('.')
			w.PutUint(nsec, 9)
		default:
			w.PutByte(verb)
		}
	}
	return w.String()
}

// Date converts a day count since 1970-01-01 into a proleptic Gregorian
// year, month (1-12) and day of month (1-31).
func Date(days uint64) (year uint64, month, day uint8) {
	year = 1970
	for {
		n := daysInYear(year)
		if days < n {
			break
		}
		days -= n
		year++
	}
	month = 1
	for {
		n := daysInMonth(year, month)
		if days < n {
			break
		}
		days -= n
		month++
	}
	return year, month, uint8(days) + 1
}

func isLeapYear(year uint64) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func daysInYear(year uint64) uint64 {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

var monthDays = [12]uint64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(year uint64, month uint8) uint64 {
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}
