/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed document path such as $.properties.products[0]['item id'].
type Path struct {
	expr     string
	segments []segment
}

// segment is one step of a path: an object key or an array index.
type segment struct {
	key     string
	index   int
	isIndex bool
}

// ParsePath parses a path expression. "$" and "$." refer to the whole document.
func ParsePath(expr string) (Path, error) {
	if !strings.HasPrefix(expr, "$") {
		return Path{}, fmt.Errorf("invalid path %q: must start with $", expr)
	}

	var segments []segment
	rest := expr[1:]
	if rest == "." {
		rest = ""
	}

	for len(rest) > 0 {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			end := strings.IndexAny(rest, ".[")
			if end == -1 {
				end = len(rest)
			}
			key := rest[:end]
			if key == "" {
				return Path{}, fmt.Errorf("invalid path %q: empty segment", expr)
			}
			segments = append(segments, segment{key: key})
			rest = rest[end:]
		case '[':
			seg, consumed, err := parseBracket(rest)
			if err != nil {
				return Path{}, fmt.Errorf("invalid path %q: %w", expr, err)
			}
			segments = append(segments, seg)
			rest = rest[consumed:]
		default:
			return Path{}, fmt.Errorf("invalid path %q: unexpected character %q", expr, rest[0])
		}
	}

	return Path{expr: expr, segments: segments}, nil
}

// parseBracket parses a leading [n], ['key'] or ["key"] segment and returns the consumed length.
func parseBracket(s string) (segment, int, error) {
	if len(s) < 3 {
		return segment{}, 0, errors.New("unterminated bracket")
	}

	if quote := s[1]; quote == '\'' || quote == '"' {
		end := strings.IndexByte(s[2:], quote)
		if end == -1 {
			return segment{}, 0, errors.New("unterminated quoted key")
		}
		closing := 2 + end + 1
		if closing >= len(s) || s[closing] != ']' {
			return segment{}, 0, errors.New("missing closing bracket")
		}
		return segment{key: s[2 : 2+end]}, closing + 1, nil
	}

	end := strings.IndexByte(s, ']')
	if end == -1 {
		return segment{}, 0, errors.New("missing closing bracket")
	}
	index, err := strconv.Atoi(s[1:end])
	if err != nil || index < 0 {
		return segment{}, 0, fmt.Errorf("invalid array index %q", s[1:end])
	}
	return segment{index: index, isIndex: true}, end + 1, nil
}

// String returns the original path expression.
func (p Path) String() string {
	return p.expr
}

// Lookup walks the document along the path. Missing keys, out of range indexes and
// steps into scalar values report the value as absent.
func (p Path) Lookup(doc interface{}) (interface{}, bool) {
	current := doc
	for _, seg := range p.segments {
		switch node := current.(type) {
		case map[string]interface{}:
			key := seg.key
			if seg.isIndex {
				key = strconv.Itoa(seg.index)
			}
			value, ok := node[key]
			if !ok {
				return nil, false
			}
			current = value
		case []interface{}:
			index := seg.index
			if !seg.isIndex {
				parsed, err := strconv.Atoi(seg.key)
				if err != nil {
					return nil, false
				}
				index = parsed
			}
			if index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}
