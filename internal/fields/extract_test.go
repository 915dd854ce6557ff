package fields

import (
	"testing"

	"github.com/Nao-Mk2/showjobs/internal/jobxml"
)

const fullRecord = `<Jobinfo>
    <Job_Id>220.head</Job_Id>
    <Job_Name>align</Job_Name>
    <Output_Path>node1:/home/alice/align.o220</Output_Path>
    <Error_Path>node1:/home/alice/align.e220</Error_Path>
    <submit_args>-l walltime=1:00:00 align.sh</submit_args>
    <euser>alice</euser>
    <egroup>lab</egroup>
    <Account_Name>proj1</Account_Name>
    <queue>batch</queue>
    <Resource_List>
        <qos>normal</qos>
        <arch>x86_64</arch>
        <opsys>centos6</opsys>
        <nodect>2</nodect>
        <walltime>90061</walltime>
        <mem>9373440kb</mem>
        <vmem>2048kb</vmem>
    </Resource_List>
    <resources_used>
        <walltime>3725</walltime>
        <cput>59</cput>
        <mem>1000kb</mem>
        <vmem>4096kb</vmem>
    </resources_used>
    <qtime>1477521422</qtime>
    <start_time>1477521430</start_time>
    <comp_time>1477525155</comp_time>
    <exit_status>0</exit_status>
    <exec_host>r2a-1/4,9+r2a-2/0</exec_host>
    <interactive>True</interactive>
    <depend>afterok:219.head</depend>
    <job_script>#!/bin/bash</job_script>
    <Variable_List>PBS_O_QUEUE=batch,PBS_O_HOME=/home/alice,PBS_O_WORKDIR=/scratch/alice/run=1,PBS_O_SHELL=/bin/bash</Variable_List>
</Jobinfo>
`

func parse(t *testing.T, s string) *jobxml.Node {
	t.Helper()
	n, err := jobxml.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return n
}

func TestExtractFullRecord(t *testing.T) {
	got := Extract(parse(t, fullRecord))
	want := Map{
		JobID:            "220.head",
		JobName:          "align",
		OutputFile:       "node1:/home/alice/align.o220",
		ErrorFile:        "node1:/home/alice/align.e220",
		WorkingDirectory: "/scratch/alice/run=1",
		HomeDirectory:    "/home/alice",
		SubmitArguments:  "-l walltime=1:00:00 align.sh",
		UserName:         "alice",
		GroupName:        "lab",
		AccountName:      "proj1",
		QueueName:        "batch",
		QualityOfService: "normal",
		Architecture:     "x86_64",
		OperatingSystem:  "centos6",
		NodeCount:        "2",
		WallclockLimit:   "90061",
		WallclockUsed:    "3725",
		CPUTime:          "59",
		MemoryUsed:       "1000kb",
		MemoryLimit:      "9373440kb",
		VmemUsed:         "4096kb",
		VmemLimit:        "2048kb",
		SubmitTime:       "1477521422",
		StartTime:        "1477521430",
		EndTime:          "1477525155",
		ExitCode:         "0",
		MasterHost:       "r2a-1",
		Interactive:      "True",
		JobDependencies:  "afterok:219.head",
		JobScript:        "#!/bin/bash",
	}
	if len(got) != len(want) {
		t.Fatalf("extracted %d fields, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestExtractMissingFieldsAreAbsent(t *testing.T) {
	got := Extract(parse(t, "<Jobinfo><Job_Id>1.head</Job_Id><Resource_List/><exit_status></exit_status></Jobinfo>"))
	if len(got) != 1 || got[JobID] != "1.head" {
		t.Fatalf("got %v, want only Job Id", got)
	}
	if _, ok := got[ExitCode]; ok {
		t.Fatalf("empty element must not produce a value")
	}
	if got := Extract(nil); len(got) != 0 {
		t.Fatalf("nil record produced %v", got)
	}
}

func TestVarListRule(t *testing.T) {
	tests := []struct {
		name   string
		list   string
		key    string
		want   string
		wantOK bool
	}{
		{"found", "A=1,PBS_O_HOME=/home/x,B=2", "PBS_O_HOME", "/home/x", true},
		{"first equals splits", "PBS_O_WORKDIR=/a=b", "PBS_O_WORKDIR", "/a=b", true},
		{"malformed tokens skipped", "junk,,PBS_O_HOME=/h", "PBS_O_HOME", "/h", true},
		{"key missing", "A=1,B=2", "PBS_O_HOME", "", false},
		{"no pairs at all", "garbage", "PBS_O_HOME", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &jobxml.Node{Name: "Jobinfo", Children: []*jobxml.Node{{Name: "Variable_List", Text: tt.list}}}
			got, ok := varListRule{"Variable_List", tt.key}.Extract(rec)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("Extract = (%q,%v), want (%q,%v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
	if _, ok := (varListRule{"Variable_List", "X"}).Extract(&jobxml.Node{Name: "Jobinfo"}); ok {
		t.Fatalf("missing Variable_List must be missing")
	}
}

func TestMasterHostRule(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"r2a-1/4,9", "r2a-1", true},
		{"node7", "node7", true},
		{"/0", "", false},
	}
	for _, tt := range tests {
		rec := &jobxml.Node{Name: "Jobinfo", Children: []*jobxml.Node{{Name: "exec_host", Text: tt.in}}}
		got, ok := masterHostRule{"exec_host"}.Extract(rec)
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("Extract(%q) = (%q,%v), want (%q,%v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
	if _, ok := (masterHostRule{"exec_host"}).Extract(&jobxml.Node{Name: "Jobinfo"}); ok {
		t.Fatalf("missing exec_host must be missing")
	}
}

func TestEveryExtractedFieldHasADisplaySlot(t *testing.T) {
	for _, e := range extractors {
		found := false
		for _, n := range Order() {
			if n == e.name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("%s is extracted but never displayed", e.name)
		}
	}
}
