// Package decl provides the typed declaration tree that lint rules operate on.
//
// # Overview
//
// A File holds one source file's declaration tree. Each Node carries its kind, name,
// accessibility, attribute flags, inherited type names, byte offset and children in
// source order.
//
// Trees are not built from source text here. An external structure tool (SourceKitten
// or a compatible emitter) produces a JSON structure document, and ParseStructure adapts
// it into Nodes. All raw tag handling ("source.lang.swift.decl.class",
// "source.decl.attribute.override", ...) stays inside this package.
//
// # Parsers
//
//	StructureFileParser: reads <source>.structure.json documents from disk
//	CommandParser:       runs `sourcekitten structure --file <source>` (configurable)
//
// # Usage Example
//
//	parser := decl.NewStructureFileParser("")
//	file, err := parser.Parse(ctx, "Sources/Greeter.swift")
//	if err != nil {
//		return err
//	}
//	file.Root.Walk(func(n *decl.Node) {
//		fmt.Println(n.Kind, n.Name, file.Location(n.Offset))
//	})
package decl
