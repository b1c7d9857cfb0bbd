package execshell

import (
	"strings"
	"unicode/utf8"
)

const (
	continuationByteLowConstant  = 0x80
	continuationByteHighConstant = 0xBF
)

// DecodedText is child process output converted to text.
//
// Lossy is true when the source bytes were not valid UTF-8 and invalid
// sequences were replaced with U+FFFD. Data is always valid UTF-8.
type DecodedText struct {
	Lossy bool
	Data  string
}

// String returns the decoded data.
func (text DecodedText) String() string {
	return text.Data
}

// Decode converts raw output bytes into DecodedText.
//
// Valid UTF-8 is returned verbatim. Otherwise every maximal invalid subpart is
// replaced by a single U+FFFD and all valid runs are preserved. No trimming or
// line ending normalization happens.
func Decode(data []byte) DecodedText {
	if utf8.Valid(data) {
		return DecodedText{Lossy: false, Data: string(data)}
	}
	return DecodedText{Lossy: true, Data: decodeWithReplacement(data)}
}

func decodeWithReplacement(data []byte) string {
	var builder strings.Builder
	builder.Grow(len(data) + utf8.UTFMax)

	position := 0
	for position < len(data) {
		leadingByte := data[position]
		if leadingByte < utf8.RuneSelf {
			builder.WriteByte(leadingByte)
			position++
			continue
		}

		sequenceLength, consumed := scanSequence(data[position:])
		if sequenceLength > 0 {
			builder.Write(data[position : position+sequenceLength])
			position += sequenceLength
			continue
		}

		builder.WriteRune(utf8.RuneError)
		position += consumed
	}

	return builder.String()
}

// scanSequence inspects the sequence starting at data[0]. It returns the
// sequence length when the sequence is well formed, or zero together with the
// length of the maximal invalid subpart to replace.
func scanSequence(data []byte) (int, int) {
	leadingByte := data[0]

	var expectedLength int
	secondByteLow, secondByteHigh := byte(continuationByteLowConstant), byte(continuationByteHighConstant)

	switch {
	case leadingByte >= 0xC2 && leadingByte <= 0xDF:
		expectedLength = 2
	case leadingByte == 0xE0:
		expectedLength = 3
		secondByteLow = 0xA0
	case leadingByte == 0xED:
		expectedLength = 3
		secondByteHigh = 0x9F
	case leadingByte >= 0xE1 && leadingByte <= 0xEF:
		expectedLength = 3
	case leadingByte == 0xF0:
		expectedLength = 4
		secondByteLow = 0x90
	case leadingByte >= 0xF1 && leadingByte <= 0xF3:
		expectedLength = 4
	case leadingByte == 0xF4:
		expectedLength = 4
		secondByteHigh = 0x8F
	default:
		return 0, 1
	}

	consumed := 1
	for consumed < expectedLength {
		if consumed >= len(data) {
			return 0, consumed
		}
		currentByte := data[consumed]
		lowBound, highBound := byte(continuationByteLowConstant), byte(continuationByteHighConstant)
		if consumed == 1 {
			lowBound, highBound = secondByteLow, secondByteHigh
		}
		if currentByte < lowBound || currentByte > highBound {
			return 0, consumed
		}
		consumed++
	}

	return expectedLength, expectedLength
}
