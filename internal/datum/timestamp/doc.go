// Package timestamp renders datum header timestamps (nanoseconds since the
// Unix epoch, UTC) as calendar strings without going through package time.
//
// Layout placeholders:
//
//	%Y  year, at least 4 digits
//	%m  month, 2 digits
//	%d  day of month, 2 digits
//	%H  hour, 2 digits
//	%M  minute, 2 digits
//	%S  second, 2 digits
//	%n  nanoseconds as "." followed by 9 digits
//
// Any other character after % is copied as is. Output never exceeds
// MaxBufSize bytes; anything beyond that is dropped.
package timestamp
