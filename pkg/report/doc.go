// Package report provides the object model of a banded report definition.
//
// A report is a tree of elements. Sections own children, bands hold an
// ordered list of elements, and groups repeat their body for every distinct
// value of their grouping fields. A MasterReport is the root of the tree;
// SubReports are report definitions embedded in bands of another report.
//
// # Quick Start
//
//	r := report.NewMasterReport()
//	r.SetQuery("sales")
//
//	region := report.NewRelationalGroup()
//	region.SetName("Region")
//	region.AddField("REGION")
//	if err := r.AddGroup(region); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := r.ItemBand().AddElement(report.NewTextField("AMOUNT")); err != nil {
//	    log.Fatal(err)
//	}
//
//	run := r.DeriveReport(false) // independent copy for one report run
//
// # Structure
//
// Every element has exactly one parent. Adding an element to a section
// detaches it from its previous parent first, and adding a section below
// itself fails with ErrLoopDetected. Structural setters return a
// *StructureError and leave the tree untouched when they reject a change.
//
// Groups and bodies nest in a fixed grammar:
//
//	RelationalGroup     -> GroupDataBody | SubGroupBody
//	SubGroupBody        -> RelationalGroup | CrosstabGroup
//	CrosstabGroup       -> CrosstabOtherGroupBody | CrosstabRowGroupBody
//	CrosstabOtherGroup  -> CrosstabOtherGroupBody | CrosstabRowGroupBody
//	CrosstabRowGroup    -> CrosstabRowGroupBody | CrosstabColumnGroupBody
//	CrosstabColumnGroup -> CrosstabColumnGroupBody | CrosstabCellBody
//
// The typed setters (RelationalGroup.SetBody and friends) accept only the
// legal body types. SetGroupBody accepts any GroupBody and rejects illegal
// ones with ErrIllegalBody.
//
// # Change Tracking
//
// Every visible mutation increments the change tracker of the mutated
// element and of all its ancestors, and reaches the ChangeListeners
// registered on the report definition at the root.
//
// # Copies
//
// Clone copies a subtree and keeps every object ID. Derive copies a subtree
// for a new report run: it drops computed attributes and assigns fresh
// object IDs unless asked to preserve them. Attribute maps and style sheets
// are shared copy-on-write, so copies are cheap until they are modified.
//
// # Thread Safety
//
// Report trees are not safe for concurrent use. Share templates through a
// DefinitionCache, which hands every caller its own derived copy.
package report
