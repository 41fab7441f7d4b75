// Package scan selects connectivity matrices out of a directory of scan
// folders named <subject>_<timeLabel>.
//
// Every selection walks the folder listing in lexicographic order and groups
// scans by subject. Expected files that are missing do not abort a selection:
// they are logged and returned as Skip records next to the nets that did load.
package scan
