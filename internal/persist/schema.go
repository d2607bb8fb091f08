/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package persist

import (
	_ "embed"
	"fmt"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed layout.schema.json
var layoutSchema []byte

// ValidateLayoutDocument checks a raw layout document against the embedded
// JSON schema. A remote document that does not conform is treated as a load
// failure rather than adopted into the store.
func ValidateLayoutDocument(doc []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(layoutSchema)
	docLoader := gojsonschema.NewBytesLoader(doc)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("invalid layout document: %s", errs[0])
		}
		return fmt.Errorf("invalid layout document")
	}
	return nil
}
