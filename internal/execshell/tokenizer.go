package execshell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

const (
	asciiWhitespaceCharactersConstant = " \t\n\f\r"
	commentLinePrefixConstant         = "//"
	lineFeedConstant                  = "\n"
	carriageReturnConstant            = "\r"
	wordSeparatorCharactersConstant   = " \t\n"
	commentWordByteConstant           = '#'
	escapeByteConstant                = '\\'
	singleQuoteByteConstant           = '\''
	doubleQuoteByteConstant           = '"'
	lineFeedByteConstant              = '\n'
)

// TokenizeRawText converts shell-like command text into an argv.
//
// The text is trimmed of ASCII whitespace. When removeComments is set, lines
// starting with "//" after leading whitespace are dropped and the remaining
// lines are concatenated without a separator, so a continuation line must
// carry its own leading whitespace. Metacharacters such as "|", "&&" and
// "$VAR" are kept literally. Splitting follows /bin/sh word rules: a backslash
// inside double quotes only escapes $, `, ", \ and a line feed, an unquoted
// backslash-newline is a line continuation, and an unquoted word starting
// with "#" comments out the rest of its line.
func TokenizeRawText(text string, removeComments bool) (NormalizedArgv, error) {
	preparedText := strings.Trim(text, asciiWhitespaceCharactersConstant)
	if removeComments {
		preparedText = RemoveCommentLines(preparedText)
	}
	if len(preparedText) == 0 {
		return NormalizedArgv{}, nil
	}

	tokens, splitError := shellquote.Split(removeCommentWords(preparedText))
	if splitError != nil {
		return nil, CommandParseError{Cause: splitError}
	}
	return NormalizedArgv(tokens), nil
}

// RemoveCommentLines drops every line whose first non-whitespace characters are "//"
// and joins the remaining lines without inserting a separator.
func RemoveCommentLines(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, line := range splitLines(text) {
		if strings.HasPrefix(strings.TrimLeft(line, asciiWhitespaceCharactersConstant), commentLinePrefixConstant) {
			continue
		}
		builder.WriteString(line)
	}
	return builder.String()
}

// splitLines splits on line feeds, strips one trailing carriage return per line,
// and yields no trailing empty line after a final line feed.
func splitLines(text string) []string {
	if len(text) == 0 {
		return nil
	}
	lines := strings.Split(text, lineFeedConstant)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for lineIndex := range lines {
		lines[lineIndex] = strings.TrimSuffix(lines[lineIndex], carriageReturnConstant)
	}
	return lines
}

// removeCommentWords drops every unquoted word starting with "#" up to the end
// of its line. Quoted and escaped characters are copied unchanged.
func removeCommentWords(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	atWordStart := true
	for index := 0; index < len(text); index++ {
		character := text[index]
		switch character {
		case commentWordByteConstant:
			if atWordStart {
				lineFeedOffset := strings.IndexByte(text[index:], lineFeedByteConstant)
				if lineFeedOffset < 0 {
					return builder.String()
				}
				index += lineFeedOffset - 1
				continue
			}
		case escapeByteConstant:
			if index+1 >= len(text) {
				builder.WriteByte(character)
				return builder.String()
			}
			builder.WriteString(text[index : index+2])
			index++
			if text[index] != lineFeedByteConstant {
				atWordStart = false
			}
			continue
		case singleQuoteByteConstant:
			closingOffset := strings.IndexByte(text[index+1:], singleQuoteByteConstant)
			if closingOffset < 0 {
				builder.WriteString(text[index:])
				return builder.String()
			}
			closingIndex := index + 1 + closingOffset
			builder.WriteString(text[index : closingIndex+1])
			index = closingIndex
			atWordStart = false
			continue
		case doubleQuoteByteConstant:
			closingIndex := index + 1
			for closingIndex < len(text) && text[closingIndex] != doubleQuoteByteConstant {
				if text[closingIndex] == escapeByteConstant {
					closingIndex++
				}
				closingIndex++
			}
			if closingIndex >= len(text) {
				builder.WriteString(text[index:])
				return builder.String()
			}
			builder.WriteString(text[index : closingIndex+1])
			index = closingIndex
			atWordStart = false
			continue
		}
		builder.WriteByte(character)
		atWordStart = strings.IndexByte(wordSeparatorCharactersConstant, character) >= 0
	}
	return builder.String()
}
