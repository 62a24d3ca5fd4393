// Package plan provides the resolution pipeline that turns analyzed model
// structs and their YAML declarations into a Plan consumed by code
// generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph
//  2. Load YAML (optional) → validate
//  3. For each marked model struct:
//     - Detect the embedded parent model, if any
//     - Classify every exported field into a field constructor and kind
//     - Apply key mapping, ignore and required declarations
//  4. Order models parents first and check wire keys for collisions
//  5. Emit diagnostics (unsupported fields, unknown properties, conflicts)
package plan
