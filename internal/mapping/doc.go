// Package mapping provides the YAML model declaration file: parsing,
// defaults, serialization and structural validation.
//
// The declaration file pins, per model type, the key mapping, the ignore
// list and the required list that end up in the generated schema
// descriptors.
//
// # Schema Overview
//
//	version: "1"
//	package: .               # relative to this file
//	output: model_schema_gen.go
//	models:
//	  - name: AccountEntity
//	    keys:
//	      uid: id            # property -> wire key
//	    required: [uid]
//	  - name: LoginResponseEntity
//	    snake_case: true     # isNew <-> is_new
//	  - name: StaffEntity
//	    keys: {title: job_title}
//	    ignore: draft        # a name, "a, b" or a list
//
// # Inheritance
//
// A model embedding another model inherits its key mapping, ignore list and
// required list. Child keys override inherited keys for the same property;
// ignore and required lists are unions. The convention ("identity" or
// "snake_case") is inherited unless the child sets one.
//
// Structs carrying a //modelgen:model directive are models even when they
// have no entry in the file, and a struct named in the file is a model even
// without the directive. Unknown keys are rejected when parsing.
package mapping
