// Package autoref resolves annotated component fields against the scene graph
// and detects whether resolution changed persisted state.
//
// # Annotations
//
// Fields opt in with an `autoref` struct tag holding comma-separated tokens:
//
//	type Turret struct {
//	    scene.Base
//	    Body    *Rigidbody   `autoref:"own"`
//	    Barrel  *Transform   `autoref:"children,name=Barrel"`
//	    Root    *Spawner     `autoref:"parent"`
//	    Mates   []*Turret    `autoref:"siblings"`
//	    Config  *TurretStats `autoref:"asset,path=configs/turret"`
//	    Ammo    int          `autoref:"sync"`
//	}
//
// Exactly one strategy token is allowed per field:
//
//	own (get)            components on the same node
//	descendant (children) the subtree below the node, depth-first pre-order
//	ancestor (parent)    the parent chain, first match only
//	sibling (siblings)   components on the other children of the parent
//	external (asset)     the asset store, by exact path or path prefix
//
// Filters are name=<node name>, path=<asset path> (external only),
// mode=default|validate|get-if-empty|validate-or-get|always, self (descendant and
// ancestor only) and optional. The sync token marks a field as tracked by change
// detection without resolving it.
//
// Exported methods whose name starts with OnAfterSync are callbacks. They must
// take no parameters and return nothing or an error, and run after every field of
// the component was resolved, in lexical order.
//
// # Engine
//
// The Engine owns the metadata cache and runs batches. A batch syncs one
// component, one node, one scene or many scenes and returns a ReportInfo holding
// the folded SyncStatus, per-type diagnostics and statistics. Nothing inside a
// batch aborts it: every failure becomes a LogItem and the batch continues.
//
// Calls made while a batch is running, typically from a callback, join that
// batch. A component already being synced by the batch is skipped.
//
// An Engine is not safe for concurrent batches; callers serialize access.
package autoref
