package sqlinline

const QStatsSummary = `--sql 086429eb-52c6-40d3-883b-f0d4d3540409
select
  (select count(*) from users),
  (select count(*) from generation_jobs where status = 'SUCCEEDED'),
  (select count(*) from generation_jobs where status = 'FAILED'),
  (select count(*) from generation_jobs where capability = 'image' and status = 'SUCCEEDED' and updated_at > now() - interval '24 hours'),
  (select count(*) from generation_jobs where capability = 'video' and status = 'SUCCEEDED' and updated_at > now() - interval '24 hours'),
  (select count(*) from assets where kind = 'GENERATED');
`

const QUpdateUserCountry = `--sql e97fc6ab-2598-43d6-a642-2ccf299a82fb
update users
set country = $2::text, updated_at = now()
where id = $1::uuid and (country is null or country = '');
`
