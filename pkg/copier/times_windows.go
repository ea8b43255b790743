// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build windows

package copier

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// setCreationTime copies the source creation time onto dst.
func setCreationTime(dst string, src os.FileInfo) error {
	data, ok := src.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return nil
	}

	name, err := windows.UTF16PtrFromString(dst)
	if err != nil {
		return err
	}

	h, err := windows.CreateFile(name,
		windows.FILE_WRITE_ATTRIBUTES,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)

	ctime := windows.Filetime{
		LowDateTime:  data.CreationTime.LowDateTime,
		HighDateTime: data.CreationTime.HighDateTime,
	}
	return windows.SetFileTime(h, &ctime, nil, nil)
}
