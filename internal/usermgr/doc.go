// Package usermgr parses and rewrites the local account databases
// (passwd(5) and shadow(5)).
//
// Unknown and comment lines are preserved verbatim so a rewrite only touches
// the entries that were changed.
package usermgr
