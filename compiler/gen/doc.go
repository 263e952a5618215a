// Package gen derives relational schemas from persistent class models.
//
// A compilation starts with the validator, which checks every persistent
// class of a unit and records its object id member. The type processor then
// records the element types of container members. When both succeed, each
// configured dialect gets an independent pass:
//
//	semantics.Unit
//	        ↓
//	   Validate / Process (dialect-independent side table)
//	        ↓
//	   Context per dialect (type resolution, naming, diagnostics)
//	        ↓
//	   Derive → schema.Schema
//	        ↓
//	   Emitter (DDL script, Go snapshot, encoded schema)
//
// # Type resolution
//
// The SQL type of a member is taken from its explicit annotation, then the
// annotation of its type, then the dialect type map. Custom override rules
// rewrite type text before it is parsed by the dialect grammar. Results
// are cached per context.
//
// # Usage
//
//	res, err := gen.Generate(ctx, unit,
//		gen.WithDialects("mssql", "pgsql"),
//		gen.WithEmitter(gen.EmitDDL),
//	)
//	for _, d := range res.Diagnostics {
//		fmt.Fprintln(os.Stderr, d)
//	}
//	if err != nil {
//		return err
//	}
package gen
