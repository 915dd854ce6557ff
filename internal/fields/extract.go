package fields

import (
	"strings"

	"github.com/Nao-Mk2/showjobs/internal/jobxml"
)

// Extractor pulls one raw value out of a record. ok is false when the value
// is missing; implementations never panic, whatever the record looks like.
type Extractor interface {
	Extract(rec *jobxml.Node) (value string, ok bool)
}

// pathRule returns the text of the element at a fixed child path.
type pathRule struct{ path string }

func (r pathRule) Extract(rec *jobxml.Node) (string, bool) {
	return rec.FindText(r.path)
}

// varListRule reads one entry of a comma separated key=value list, such as
// the exported environment in Variable_List.
type varListRule struct {
	path string
	key  string
}

func (r varListRule) Extract(rec *jobxml.Node) (string, bool) {
	list, ok := rec.FindText(r.path)
	if !ok {
		return "", false
	}
	for _, pair := range strings.Split(list, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		if strings.TrimSpace(key) == r.key {
			return value, true
		}
	}
	return "", false
}

// masterHostRule keeps the host part of exec_host ("r2a-1/4,9" -> "r2a-1").
type masterHostRule struct{ path string }

func (r masterHostRule) Extract(rec *jobxml.Node) (string, bool) {
	hosts, ok := rec.FindText(r.path)
	if !ok {
		return "", false
	}
	host, _, _ := strings.Cut(strings.TrimSpace(hosts), "/")
	return host, host != ""
}

type extraction struct {
	name Name
	rule Extractor
}

var extractors = []extraction{
	{JobID, pathRule{"Job_Id"}},
	{JobName, pathRule{"Job_Name"}},
	{OutputFile, pathRule{"Output_Path"}},
	{ErrorFile, pathRule{"Error_Path"}},
	{WorkingDirectory, varListRule{"Variable_List", "PBS_O_WORKDIR"}},
	{HomeDirectory, varListRule{"Variable_List", "PBS_O_HOME"}},
	{SubmitArguments, pathRule{"submit_args"}},
	{UserName, pathRule{"euser"}},
	{GroupName, pathRule{"egroup"}},
	{AccountName, pathRule{"Account_Name"}},
	{QueueName, pathRule{"queue"}},
	{QualityOfService, pathRule{"Resource_List/qos"}},
	{Architecture, pathRule{"Resource_List/arch"}},
	{OperatingSystem, pathRule{"Resource_List/opsys"}},
	{NodeCount, pathRule{"Resource_List/nodect"}},
	{WallclockLimit, pathRule{"Resource_List/walltime"}},
	{WallclockUsed, pathRule{"resources_used/walltime"}},
	{CPUTime, pathRule{"resources_used/cput"}},
	{MemoryUsed, pathRule{"resources_used/mem"}},
	{MemoryLimit, pathRule{"Resource_List/mem"}},
	{VmemUsed, pathRule{"resources_used/vmem"}},
	{VmemLimit, pathRule{"Resource_List/vmem"}},
	{SubmitTime, pathRule{"qtime"}},
	{StartTime, pathRule{"start_time"}},
	{EndTime, pathRule{"comp_time"}},
	{ExitCode, pathRule{"exit_status"}},
	{MasterHost, masterHostRule{"exec_host"}},
	{Interactive, pathRule{"interactive"}},
	{JobDependencies, pathRule{"depend"}},
	{JobScript, pathRule{"job_script"}},
}

// Extract applies every registered rule to rec and returns the values that
// were found.
func Extract(rec *jobxml.Node) Map {
	m := make(Map, len(extractors))
	if rec == nil {
		return m
	}
	for _, e := range extractors {
		if v, ok := e.rule.Extract(rec); ok {
			m[e.name] = v
		}
	}
	return m
}
