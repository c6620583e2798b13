// Package theme deploys a named theme through the Canvas Theme Editor.
//
// Reconcile is a create-or-update operation: it looks the theme up in the
// account's theme listing, edits it in place when it exists and creates it
// otherwise, uploads whichever asset files are present locally, and commits
// with the editor's two-phase save-then-apply sequence. Re-running against an
// already-deployed theme of the same name edits it rather than duplicating
// it; asset content is re-uploaded unconditionally (no content hashing).
//
// Failures carry the stage they occurred in (lookup, create, edit, upload,
// save, apply). A save that succeeds followed by an apply that fails leaves
// the theme saved but inactive on the Canvas side; that partial state is a
// legitimate terminal condition and is never rolled back.
package theme
