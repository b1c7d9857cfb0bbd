package execshell_test

import (
	"fmt"

	"github.com/temirov/cmdkit/internal/execshell"
)

func ExampleTokenizeRawText() {
	argv, tokenizeError := execshell.TokenizeRawText("// format with nightly\ncargo +nightly fmt", true)
	if tokenizeError != nil {
		fmt.Println(tokenizeError)
		return
	}
	fmt.Println(argv)
	// Output: ["cargo", "+nightly", "fmt"]
}

func ExampleDecode() {
	decodedText := execshell.Decode([]byte{'o', 'k', 0xFF})
	fmt.Println(decodedText.Lossy, decodedText.Data)
	// Output: true ok�
}
