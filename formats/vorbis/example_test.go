// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/audfx/formats/vorbis"
)

// ExampleDecoder_Decode_errorHandling shows the result of decoding data
// that is not an Ogg stream.
func ExampleDecoder_Decode_errorHandling() {
	_, err := vorbis.Decoder{}.Decode(bytes.NewReader([]byte("not an ogg file")))
	fmt.Println("decoded:", err == nil)
	// Output:
	// decoded: false
}
