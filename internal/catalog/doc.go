// Package catalog decodes extension catalogs supplied as data into symbol
// definitions and loads them into a symdef.Registry.
//
// A catalog file is either HCL (.hcl) or YAML (.yaml, .yml). Both forms
// describe one or more extensions, each owning a list of definitions:
//
//	extension "Acme.Firewall" {
//	  definition "FirewallException" {
//	    category = "core"
//	    field "Name" {
//	      type     = string
//	      nullable = false
//	    }
//	    field "Port" { type = number }
//	  }
//	}
//
// In YAML the same catalog reads:
//
//	extensions:
//	  - name: Acme.Firewall
//	    definitions:
//	      - name: FirewallException
//	        category: core
//	        fields:
//	          - {name: Name, type: string, nullable: false}
//	          - {name: Port, type: number}
//
// Fields are nullable unless stated otherwise. Field order is significant: it
// is the column order of the resulting definition.
package catalog
