// Package sequencer turns the ordering constraints of WixAction rows into a
// total order per sequence table and stamps the resolved numbers back onto
// the rows.
//
// Every constraint becomes an edge of one graph per table. "A After B" adds
// B->A, "A Before B" adds A->B, and explicit Sequence values chain every
// action of one value to every action of the next larger value. A Kahn sort
// then emits the actions; when several are ready the one with the smaller
// effective sequence goes first. An action's effective sequence is its own
// explicit value, or the value it inherits by following its After/Before
// anchors, biased so that Before-anchored actions sort just ahead of their
// anchor and After-anchored ones just behind it. Actions with no anchor sort
// after anchored ones. Remaining ties fall to the action name, then to merge
// order. The name is compared first so that the result does not change with
// the order in which sections are merged.
//
// An action whose explicit value contradicts its Before/After constraint
// closes a cycle and is reported as CyclicActionOrder along with every other
// cycle, one diagnostic per strongly connected component.
package sequencer
