/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package message

// Codec is the contract the connection engine holds the wire codec
// collaborator to. Header parsing, signature validation, body marshalling
// and fd attachment are the codec's job; the engine only ever calls
// Marshal to turn a sealed Message into bytes for the write queue and
// Encode to turn freshly read bytes into Messages for the read queue.
type Codec interface {
	// Marshal serializes a sealed message into its wire form.
	Marshal(m *Message) ([]byte, error)

	// Unmarshal consumes as much of buf as it needs to produce one
	// complete message. consumed is the number of bytes used from buf;
	// consumed == 0 and err == nil means buf does not yet hold a full
	// message and the caller should read more and retry.
	Unmarshal(buf []byte) (m *Message, consumed int, err error)
}
