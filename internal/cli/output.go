/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"fmt"
	"io"

	"dirpx.dev/commons/codec"
	"dirpx.dev/commons/conv"
)

// result is the structured form of a command's answer.
type result struct {
	Command string   `json:"command" yaml:"command" toml:"command" msgpack:"command"`
	Input   []string `json:"input" yaml:"input" toml:"input" msgpack:"input"`
	Result  any      `json:"result" yaml:"result" toml:"result" msgpack:"result"`
}

// write renders r in the selected format. Text prints the bare result;
// msgpack output is hex encoded so it survives a terminal.
func (o *options) write(w io.Writer, r result) error {
	if o.output == "" || o.output == "text" {
		_, err := fmt.Fprintln(w, r.Result)
		return err
	}

	c, err := codec.ByName(o.output)
	if err != nil {
		return err
	}
	b, err := c.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode %s output: %w", c.Name(), err)
	}
	if c.Name() == (codec.MsgPack{}).Name() {
		b = []byte(conv.BytesToHex(b) + "\n")
	} else if len(b) > 0 && b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	_, err = w.Write(b)
	return err
}
