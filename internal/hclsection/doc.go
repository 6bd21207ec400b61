// Package hclsection decodes linker sections written in HCL. It stands in
// for a real compiler front end in tests and in the irlink command:
//
//	section "product" {
//	  namespace   = "app"
//	  source_file = "product.wxs"
//
//	  symbol "Feature" "Main" {
//	    Level = 1
//	  }
//	  symbol "Component" "Core" {
//	    access       = "library"
//	    DirectoryRef = "INSTALLDIR"
//	  }
//	  row "WixVariable" {
//	    Value = "x"
//	  }
//	  reference "Directory" { keys = ["INSTALLDIR"] }
//	  group {
//	    parent_type = "Feature"
//	    parent      = "Main"
//	    child_type  = "Component"
//	    child       = "Core"
//	  }
//	}
//
// A symbol block carries a table name and an identifier; a row block is an
// anonymous symbol. Every other attribute of a symbol or row block sets the
// column of the same name and must match its kind. Blocks keep their source
// order inside a section.
package hclsection
