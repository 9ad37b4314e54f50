// Package gnu orders version strings the way GNU sort -V does.
package gnu

/* Compare file names containing version numbers.

   Copyright (C) 1995 Ian Jackson <iwj10@cus.cam.ac.uk>
   Copyright (C) 2001 Anthony Towns <aj@azure.humbug.org.au>
   Copyright (C) 2008-2025 Free Software Foundation, Inc.

   This file is free software: you can redistribute it and/or modify
   it under the terms of the GNU Lesser General Public License as
   published by the Free Software Foundation, either version 3 of the
   License, or (at your option) any later version.

   This file is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
   GNU Lesser General Public License for more details.

   You should have received a copy of the GNU Lesser General Public License
   along with this program.  If not, see <https://www.gnu.org/licenses/>.  */

import "slices"

// Compare compares two version strings and returns:
//
//	-1 if a < b
//	 0 if a == b
//	 1 if a > b
func Compare(a, b string) int {
	switch c := verrevcmp([]byte(a), []byte(b)); {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}

// Sort orders versions in place, lowest first. Equal versions keep their
// relative order.
func Sort(versions []string) {
	slices.SortStableFunc(versions, Compare)
}

// SortFunc orders items in place by the version key returns for each.
func SortFunc[T any](items []T, key func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return Compare(key(a), key(b))
	})
}

// verrevcmp compares character and numeric segments separately, numeric
// segments by value.
func verrevcmp(s1, s2 []byte) int {
	s1Len, s2Len := len(s1), len(s2)
	s1Pos, s2Pos := 0, 0

	for s1Pos < s1Len || s2Pos < s2Len {
		firstDiff := 0

		for (s1Pos < s1Len && !isDigit(s1[s1Pos])) || (s2Pos < s2Len && !isDigit(s2[s2Pos])) {
			var c1, c2 byte
			if s1Pos < s1Len {
				c1 = s1[s1Pos]
			}
			if s2Pos < s2Len {
				c2 = s2[s2Pos]
			}
			if o1, o2 := order(c1), order(c2); o1 != o2 {
				return o1 - o2
			}
			s1Pos++
			s2Pos++
		}

		for s1Pos < s1Len && s1[s1Pos] == '0' {
			s1Pos++
		}
		for s2Pos < s2Len && s2[s2Pos] == '0' {
			s2Pos++
		}

		for s1Pos < s1Len && s2Pos < s2Len && isDigit(s1[s1Pos]) && isDigit(s2[s2Pos]) {
			if firstDiff == 0 {
				firstDiff = int(s1[s1Pos]) - int(s2[s2Pos])
			}
			s1Pos++
			s2Pos++
		}

		// the longer digit run is the larger number
		if s1Pos < s1Len && isDigit(s1[s1Pos]) {
			return 1
		}
		if s2Pos < s2Len && isDigit(s2[s2Pos]) {
			return -1
		}
		if firstDiff != 0 {
			return firstDiff
		}
	}
	return 0
}

// order returns the sorting weight of c: digits and NUL 0, letters their
// ASCII value, '~' -1, anything else ASCII value + 256.
func order(c byte) int {
	switch {
	case isDigit(c), c == 0:
		return 0
	case isAlpha(c):
		return int(c)
	case c == '~':
		return -1
	}
	return int(c) + 256
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
