// Package fields turns a parsed job record into named, display ready values.
//
// Extraction (Extract) pulls raw strings out of a record; formatting
// (Format, FormatAll) renders them for display in the canonical order
// returned by Order.
package fields

// Name is a semantic report field.
type Name string

const (
	JobID            Name = "Job Id"
	JobName          Name = "Job Name"
	OutputFile       Name = "Output File"
	ErrorFile        Name = "Error File"
	WorkingDirectory Name = "Working Directory"
	HomeDirectory    Name = "Home Directory"
	SubmitArguments  Name = "Submit Arguments"
	UserName         Name = "User Name"
	GroupName        Name = "Group Name"
	AccountName      Name = "Account Name"
	QueueName        Name = "Queue Name"
	QualityOfService Name = "Quality Of Service"
	Architecture     Name = "Architecture"
	OperatingSystem  Name = "Operating System"
	NodeCount        Name = "Node Count"
	WallclockLimit   Name = "Wallclock Limit"
	WallclockUsed    Name = "Wallclock Duration"
	CPUTime          Name = "CPUTime"
	MemoryUsed       Name = "Memory Used"
	MemoryLimit      Name = "Memory Limit"
	VmemUsed         Name = "vmem Used"
	VmemLimit        Name = "vmem Limit"
	SubmitTime       Name = "Submit Time"
	StartTime        Name = "Start Time"
	EndTime          Name = "End Time"
	ExitCode         Name = "Exit Code"
	MasterHost       Name = "Master Host"
	Interactive      Name = "Interactive"
	JobDependencies  Name = "Job Dependencies"
	JobScript        Name = "Job Script"
)

// Map holds raw extracted values. A field missing from the record is absent
// from the map.
type Map map[Name]string

// Field is one formatted value in display order.
type Field struct {
	Name  Name
	Value string
}
