// Package credentials persists the single OAuth credential record on local
// disk.
//
// The store is the sole owner of the on-disk representation: every other
// component goes through Load, Save and Delete. A record is either fully
// present or absent; malformed or missing files read as absent so a caller
// never sees a partial record.
package credentials
