// Package fileutil holds the permission modes used for report output.
package fileutil

import "os"

// ReportFileMode is the permission mode for report artifacts. Reports are
// meant to be published as build output, so they are readable by all.
const ReportFileMode os.FileMode = 0o644

// ReportDirMode is the permission mode for directories created to hold reports.
const ReportDirMode os.FileMode = 0o755

// OwnerReadWrite is the permission mode for files that may carry local
// settings, such as a generated configuration file.
const OwnerReadWrite os.FileMode = 0o600
