// Package connectome holds the value types shared by the scan selector and the
// significance filters (Atlas and Net) together with the file formats they are
// read from and written to.
//
// A connectivity dataset is laid out one folder per scan:
//
//	<root>/<subjectId>_<timeLabel>/<atlasName>/bold_net/corrcoef.csv
//	<root>/<subjectId>_<timeLabel>/<atlasName>/bold_net/timeseries.csv
//	<root>/<subjectId>_<timeLabel>/<atlasName>/bold_net/<start>-<end>.csv
package connectome
